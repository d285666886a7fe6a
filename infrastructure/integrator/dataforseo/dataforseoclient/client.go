package dataforseoclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	dataforseodomain "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/domain"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
	"github.com/vfg2006/paid-search-advisor/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const providerName = "dataforseo"

var ErrMissingCredentials = errors.New("dataforseo credentials not configured")

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks

type Client interface {
	GetAdvertisers(ctx context.Context, request dataforseodomain.SerpTaskRequest, credentials dataforseodomain.Credentials) ([]dataforseodomain.SerpItem, error)
	GetOrganicResults(ctx context.Context, request dataforseodomain.SerpTaskRequest, credentials dataforseodomain.Credentials) ([]dataforseodomain.SerpItem, error)
	GetSearchVolume(ctx context.Context, request dataforseodomain.SearchVolumeRequest, credentials dataforseodomain.Credentials) (*dataforseodomain.SearchVolumeResult, error)
}

type DataForSEOClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &DataForSEOClient{
		httpClient: &http.Client{
			Timeout: cfg.DataForSEO.Timeout,
		},
		config: cfg,
	}
}

// resolveCredentials usa as credenciais da requisição e, na falta delas, as da configuração
func (c *DataForSEOClient) resolveCredentials(credentials dataforseodomain.Credentials) (dataforseodomain.Credentials, error) {
	if credentials.Login != "" && credentials.Password != "" {
		return credentials, nil
	}

	if c.config.DataForSEO.Login == "" || c.config.DataForSEO.Password == "" {
		return dataforseodomain.Credentials{}, ErrMissingCredentials
	}

	return dataforseodomain.Credentials{
		Login:    c.config.DataForSEO.Login,
		Password: c.config.DataForSEO.Password,
	}, nil
}

// post envia uma única task para um endpoint live e decodifica o envelope em out
func (c *DataForSEOClient) post(ctx context.Context, path string, task any, credentials dataforseodomain.Credentials, out any) error {
	credentials, err := c.resolveCredentials(credentials)
	if err != nil {
		return err
	}

	body, err := json.Marshal([]any{task})
	if err != nil {
		return errors.Wrap(err, "erro ao serializar a task")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.DataForSEO.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição")
	}
	req.SetBasicAuth(credentials.Login, credentials.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "erro ao chamar %s", path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("requisição para %s falhou com status: %s", path, resp.Status)
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.WithField("path", path).Trace(utils.PrettyJson(payload))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return nil
}

// fetchFirstResult executa a task e devolve o primeiro resultado, ou nil quando a API não retorna nada
func fetchFirstResult[T any](
	ctx context.Context,
	c *DataForSEOClient,
	endpoint string,
	path string,
	task any,
	credentials dataforseodomain.Credentials,
) (result *T, err error) {
	defer func() {
		metrics.RecordProviderRequest(providerName, endpoint, err)
	}()

	var response dataforseodomain.Response[T]
	if err := c.post(ctx, path, task, credentials, &response); err != nil {
		return nil, err
	}

	if response.StatusCode != dataforseodomain.StatusOK {
		return nil, errors.Errorf("%s retornou status %d: %s", endpoint, response.StatusCode, response.StatusMessage)
	}

	if len(response.Tasks) == 0 {
		return nil, nil
	}

	taskResponse := response.Tasks[0]
	if taskResponse.StatusCode != dataforseodomain.StatusOK {
		return nil, errors.Errorf("task de %s retornou status %d: %s", endpoint, taskResponse.StatusCode, taskResponse.StatusMessage)
	}

	if len(taskResponse.Result) == 0 {
		return nil, nil
	}

	return &taskResponse.Result[0], nil
}
