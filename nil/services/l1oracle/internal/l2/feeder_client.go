package l2

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/go-resty/resty/v2"
)

const (
	getTransactionPath = "/feeder_gateway/get_transaction"
	getBlockPath       = "/feeder_gateway/get_block"
)

type FeederClientConfig struct {
	Endpoint   string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RetryCount int           `mapstructure:"retryCount" yaml:"retryCount"`
}

func DefaultFeederClientConfig() *FeederClientConfig {
	return &FeederClientConfig{
		Timeout:    10 * time.Second,
		RetryCount: 3,
	}
}

func (cfg *FeederClientConfig) Validate() error {
	if cfg.Endpoint == "" {
		return errors.New("empty feeder gateway endpoint")
	}
	if cfg.Timeout <= 0 {
		return errors.New("feeder gateway timeout must be positive")
	}
	if cfg.RetryCount < 0 {
		return errors.New("feeder gateway retry count must not be negative")
	}
	return nil
}

// FeederClient reads transactions and block headers from a Starknet-style feeder gateway.
type FeederClient struct {
	http   *resty.Client
	logger logging.Logger
}

func NewFeederClient(config *FeederClientConfig, logger logging.Logger) (*FeederClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &FeederClient{}
	c.logger = logger.With().
		Str(logging.FieldComponent, c.Name()).
		Str(logging.FieldUrl, config.Endpoint).
		Logger()

	c.http = resty.New().
		SetBaseURL(config.Endpoint).
		SetTimeout(config.Timeout).
		SetRetryCount(config.RetryCount).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{c.logger})
	return c, nil
}

func (c *FeederClient) Name() string {
	return "feeder-client"
}

func (c *FeederClient) GetTransaction(ctx context.Context, hash felt.Felt) (*TransactionInfo, error) {
	var info TransactionInfo
	if err := c.get(ctx, getTransactionPath, "transactionHash", hash.Hex(), &info); err != nil {
		return nil, err
	}
	if info.Status == txStatusNotReceived || info.Transaction == nil {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, hash)
	}
	return &info, nil
}

func (c *FeederClient) GetBlockTimestamp(ctx context.Context, number uint64) (uint64, error) {
	var block blockInfo
	if err := c.get(ctx, getBlockPath, "blockNumber", strconv.FormatUint(number, 10), &block); err != nil {
		return 0, err
	}
	return block.Timestamp, nil
}

// GetHandlerTx fetches the transaction together with the timestamp of the L2 block that includes it.
func (c *FeederClient) GetHandlerTx(ctx context.Context, hash felt.Felt) (*HandlerTx, uint64, error) {
	info, err := c.GetTransaction(ctx, hash)
	if err != nil {
		return nil, 0, err
	}
	if info.BlockNumber == nil {
		return nil, 0, fmt.Errorf("%w: %s has status %s", ErrTxNotIncluded, hash, info.Status)
	}

	ts, err := c.GetBlockTimestamp(ctx, *info.BlockNumber)
	if err != nil {
		return nil, 0, err
	}

	c.logger.Debug().
		Stringer(logging.FieldTransactionHash, hash).
		Uint64(logging.FieldBlockNumber, *info.BlockNumber).
		Uint64(logging.FieldL2Timestamp, ts).
		Str(logging.FieldTransactionType, info.Transaction.Type).
		Msg("fetched L2 transaction")
	return info.Transaction, ts, nil
}

func (c *FeederClient) get(ctx context.Context, path, param, value string, result any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		SetResult(result).
		SetError(&gatewayError{}).
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFeederGateway, path, err)
	}
	if resp.IsError() {
		if gwErr, ok := resp.Error().(*gatewayError); ok && gwErr.Code != "" {
			return fmt.Errorf("%w: %s: status %d: %s: %s", ErrFeederGateway, path, resp.StatusCode(), gwErr.Code, gwErr.Message)
		}
		return fmt.Errorf("%w: %s: status %d: %s", ErrFeederGateway, path, resp.StatusCode(), resp.String())
	}
	return nil
}

type restyLogger struct {
	logger logging.Logger
}

var _ resty.Logger = restyLogger{}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}
