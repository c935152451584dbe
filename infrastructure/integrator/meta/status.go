package meta

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

// Translation é o resultado da tradução do vocabulário de status da plataforma
// para o enum interno. Learning é um sub-estado apenas de exibição: o anúncio é
// tratado como ativo pela máquina de estados.
type Translation struct {
	Status   domain.AdStatus
	Learning bool
}

// TranslateRemoteStatus traduz o par (status, effective_status) da plataforma
// para o status interno. O effective_status é avaliado primeiro porque carrega
// a nuance de entrega que o status configurado não tem. A função é total:
// valores não mapeados caem no fallback e são logados para extensão futura.
func TranslateRemoteStatus(remoteStatus, effectiveStatus string) Translation {
	effective := strings.ToUpper(strings.TrimSpace(effectiveStatus))

	if strings.Contains(effective, "LEARNING") {
		return Translation{Status: domain.AdStatusActive, Learning: true}
	}

	switch effective {
	case "ACTIVE", "CAMPAIGN_PAUSED", "ADSET_PAUSED":
		return Translation{Status: pausedOrActive(remoteStatus)}
	case "PENDING_REVIEW", "IN_PROCESS":
		return Translation{Status: domain.AdStatusPendingReview}
	case "DISAPPROVED", "REJECTED", "WITH_ISSUES":
		return Translation{Status: domain.AdStatusRejected}
	case "PAUSED":
		return Translation{Status: domain.AdStatusPaused}
	}

	logrus.WithFields(logrus.Fields{
		"status":           remoteStatus,
		"effective_status": effectiveStatus,
	}).Warn("status: unmapped remote status value, using fallback")

	return Translation{Status: pausedOrActive(remoteStatus)}
}

func pausedOrActive(remoteStatus string) domain.AdStatus {
	if strings.EqualFold(strings.TrimSpace(remoteStatus), "PAUSED") {
		return domain.AdStatusPaused
	}
	return domain.AdStatusActive
}
