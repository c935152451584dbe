package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
)

// CreateAd cria o anúncio na plataforma a partir do AdSpec e retorna o
// identificador remoto com o status inicial reportado
func (c *MetaClient) CreateAd(ctx context.Context, accountID, accessToken string, spec *metadomain.AdSpec) (*metadomain.RemoteAd, error) {
	baseURL := fmt.Sprintf("%s/act_%s/ads", c.Cfg.Meta.URL, accountID)

	creative, err := json.Marshal(map[string]any{
		"image_url":    spec.CreativeURL,
		"headline":     spec.Headline,
		"primary_text": spec.PrimaryText,
		"destination": map[string]string{
			"type":  spec.DestinationType,
			"value": spec.DestinationValue,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar criativo: %w", err)
	}

	params := url.Values{}
	params.Add("name", spec.Name)
	params.Add("objective", spec.CampaignGoal)
	params.Add("daily_budget", strconv.FormatInt(spec.DailyBudgetCents, 10))
	params.Add("creative", string(creative))
	if len(spec.TargetingLocations) > 0 {
		targeting, err := json.Marshal(map[string]any{"geo_locations": spec.TargetingLocations})
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar targeting: %w", err)
		}
		params.Add("targeting", string(targeting))
	}
	params.Add("fields", "id,status,effective_status")
	params.Add("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, strings.NewReader(params.Encode()))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response metadomain.RemoteAd
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if response.ID == "" {
		return nil, fmt.Errorf("resposta de criação sem identificador do anúncio")
	}

	// A criação pode devolver apenas o id; nesse caso o anúncio entra em revisão
	if response.Status == "" {
		response.Status = "PENDING_REVIEW"
	}
	if response.EffectiveStatus == "" {
		response.EffectiveStatus = "PENDING_REVIEW"
	}

	return &response, nil
}
