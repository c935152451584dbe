package metadomain

// AdSpec é a requisição de criação de anúncio montada a partir do criativo,
// copy, destino e orçamento/targeting da campanha
type AdSpec struct {
	Name               string   `json:"name"`
	CampaignGoal       string   `json:"campaign_goal"`
	DailyBudgetCents   int64    `json:"daily_budget_cents"`
	CreativeURL        string   `json:"creative_url"`
	Headline           string   `json:"headline"`
	PrimaryText        string   `json:"primary_text"`
	DestinationType    string   `json:"destination_type"`
	DestinationValue   string   `json:"destination_value"`
	TargetingLocations []string `json:"targeting_locations"`
}

// RemoteAd é a resposta da plataforma à criação de um anúncio
type RemoteAd struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
}

// RemoteAdStatus é o estado remoto de um anúncio já criado. Este é o único
// ponto do sistema que toca o payload fracamente tipado da plataforma: tudo
// que entra é convertido para esta estrutura fechada na borda.
type RemoteAdStatus struct {
	Status          string           `json:"status"`
	EffectiveStatus string           `json:"effective_status"`
	Issues          []AdIssue        `json:"issues_info"`
	Recommendations []Recommendation `json:"recommendations"`
}

// AdIssue descreve um problema reportado pela plataforma para o anúncio
type AdIssue struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	ErrorSummary string `json:"error_summary"`
	Level        string `json:"level"`
}

// Recommendation é uma sugestão de otimização retornada pela plataforma
type Recommendation struct {
	Code       int    `json:"code"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Importance string `json:"importance"`
}

// FirstIssueSummary retorna o resumo do primeiro problema reportado, se houver
func (r *RemoteAdStatus) FirstIssueSummary() string {
	if len(r.Issues) == 0 {
		return ""
	}
	if r.Issues[0].ErrorSummary != "" {
		return r.Issues[0].ErrorSummary
	}
	return r.Issues[0].ErrorMessage
}
