package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
)

// GetAdStatus consulta o status e o effective_status de um anúncio já criado,
// incluindo os problemas e recomendações reportados pela plataforma
func (c *MetaClient) GetAdStatus(ctx context.Context, remoteAdID, accessToken string) (*metadomain.RemoteAdStatus, error) {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, remoteAdID)

	params := url.Values{}
	params.Add("fields", "status,effective_status,issues_info,recommendations")
	params.Add("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

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

	var response metadomain.RemoteAdStatus
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if response.Status == "" && response.EffectiveStatus == "" {
		return nil, fmt.Errorf("resposta de status sem dados para o anúncio %s", remoteAdID)
	}

	return &response, nil
}
