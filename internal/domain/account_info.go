package domain

// AccountInfo descreve uma conta de anúncios alcançável com as credenciais
// atuais. Para plataformas com hierarquia (MCC, Business Center), IsManager
// marca as contas gerenciadoras.
type AccountInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency,omitempty"`
	Status    string `json:"status,omitempty"`
	IsManager bool   `json:"is_manager"`
}
