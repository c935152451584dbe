package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	CreateAd(ctx context.Context, accountID, accessToken string, spec *metadomain.AdSpec) (*metadomain.RemoteAd, error)
	GetAdStatus(ctx context.Context, remoteAdID, accessToken string) (*metadomain.RemoteAdStatus, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	client := &MetaClient{
		Cfg:        cfg,
		HTTPClient: &http.Client{},
	}
	return client
}

// handleResponse lê o corpo da resposta e converte respostas de erro da Graph
// API para um RequestError tipado
func (c *MetaClient) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, metadomain.NewRequestError(resp.StatusCode, body)
}
