package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

func TestTranslateRemoteStatus(t *testing.T) {
	tests := []struct {
		name            string
		remoteStatus    string
		effectiveStatus string
		expected        Translation
	}{
		{
			name:            "Anúncio em aprendizado vira ativo com sub-estado learning",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "LEARNING",
			expected:        Translation{Status: domain.AdStatusActive, Learning: true},
		},
		{
			name:            "Aprendizado limitado também marca learning",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "LEARNING_LIMITED",
			expected:        Translation{Status: domain.AdStatusActive, Learning: true},
		},
		{
			name:            "Effective ACTIVE com status ACTIVE vira ativo",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "ACTIVE",
			expected:        Translation{Status: domain.AdStatusActive},
		},
		{
			name:            "Campanha pausada com anúncio configurado como PAUSED vira pausado",
			remoteStatus:    "PAUSED",
			effectiveStatus: "CAMPAIGN_PAUSED",
			expected:        Translation{Status: domain.AdStatusPaused},
		},
		{
			name:            "Campanha pausada com anúncio configurado como ACTIVE permanece ativo",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "CAMPAIGN_PAUSED",
			expected:        Translation{Status: domain.AdStatusActive},
		},
		{
			name:            "Conjunto pausado segue o status configurado",
			remoteStatus:    "PAUSED",
			effectiveStatus: "ADSET_PAUSED",
			expected:        Translation{Status: domain.AdStatusPaused},
		},
		{
			name:            "Em revisão vira pending_review",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "PENDING_REVIEW",
			expected:        Translation{Status: domain.AdStatusPendingReview},
		},
		{
			name:            "Em processamento também vira pending_review",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "IN_PROCESS",
			expected:        Translation{Status: domain.AdStatusPendingReview},
		},
		{
			name:            "Reprovado vira rejected",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "DISAPPROVED",
			expected:        Translation{Status: domain.AdStatusRejected},
		},
		{
			name:            "Com pendências vira rejected",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "WITH_ISSUES",
			expected:        Translation{Status: domain.AdStatusRejected},
		},
		{
			name:            "Pausado pelo usuário vira paused",
			remoteStatus:    "PAUSED",
			effectiveStatus: "PAUSED",
			expected:        Translation{Status: domain.AdStatusPaused},
		},
		{
			name:            "Valor não mapeado cai no fallback pelo status configurado",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "SOMETHING_NEW",
			expected:        Translation{Status: domain.AdStatusActive},
		},
		{
			name:            "Valor não mapeado com status PAUSED cai em pausado",
			remoteStatus:    "PAUSED",
			effectiveStatus: "SOMETHING_NEW",
			expected:        Translation{Status: domain.AdStatusPaused},
		},
		{
			name:            "Effective vazio usa o status configurado",
			remoteStatus:    "ACTIVE",
			effectiveStatus: "",
			expected:        Translation{Status: domain.AdStatusActive},
		},
		{
			name:            "Tradução normaliza caixa e espaços",
			remoteStatus:    " paused ",
			effectiveStatus: " paused ",
			expected:        Translation{Status: domain.AdStatusPaused},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TranslateRemoteStatus(tt.remoteStatus, tt.effectiveStatus))
		})
	}
}
