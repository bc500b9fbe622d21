package googleads

// Estruturas de resposta da Google Ads API (REST searchStream/search)

type searchResponse struct {
	Results       []searchResult `json:"results"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

type searchResult struct {
	Customer       *customer       `json:"customer,omitempty"`
	CustomerClient *customerClient `json:"customerClient,omitempty"`
	Campaign       *campaign       `json:"campaign,omitempty"`
	CampaignBudget *campaignBudget `json:"campaignBudget,omitempty"`
	Metrics        *metrics        `json:"metrics,omitempty"`
	Segments       *segments       `json:"segments,omitempty"`
}

type customer struct {
	ID              string `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	Manager         bool   `json:"manager"`
}

type customerClient struct {
	ID              string `json:"id"`
	ClientCustomer  string `json:"clientCustomer"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	Status          string `json:"status"`
	Manager         bool   `json:"manager"`
	Level           string `json:"level"`
}

type campaign struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResourceName string `json:"resourceName"`
}

type campaignBudget struct {
	AmountMicros string `json:"amountMicros"`
	Type         string `json:"type"`
}

type metrics struct {
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	CostMicros       string  `json:"costMicros"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
}

type segments struct {
	Date string `json:"date"`
}

type listAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

type mutateOperation struct {
	Update     *campaignUpdate `json:"update"`
	UpdateMask string          `json:"updateMask"`
}

type campaignUpdate struct {
	ResourceName string `json:"resourceName"`
	Status       string `json:"status"`
}

type mutateRequest struct {
	Operations []mutateOperation `json:"operations"`
}

type mutateResponse struct {
	Results []struct {
		ResourceName string `json:"resourceName"`
	} `json:"results"`
}
