package syncing

// Session identifica quem pediu a sincronização. TeamID delimita o escopo de
// dados; UserID entra apenas nos logs. SyncType distingue execuções agendadas
// (incremental/full) das interativas e fica registrado no log de sync.
type Session struct {
	TeamID   string
	UserID   string
	SyncType string
}
