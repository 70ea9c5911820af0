package l2

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/stretchr/testify/require"
)

const (
	handlerTxHash = "0x3d8e1b6b4cf1c1ecd76b0ec6b3d1e5e1c2c7aa1bdc1bbf0ad4d3b0b1f4ee9a1"

	handlerTxJson = `{
		"status": "ACCEPTED_ON_L1",
		"finality_status": "ACCEPTED_ON_L1",
		"block_hash": "0x47c3637b57c2b079b93c61539950c17e868a28f46cdef28f88521067f21e943",
		"block_number": 1024,
		"transaction_index": 3,
		"transaction": {
			"type": "L1_HANDLER",
			"transaction_hash": "0x03d8e1b6b4cf1c1ecd76b0ec6b3d1e5e1c2c7aa1bdc1bbf0ad4d3b0b1f4ee9a1",
			"version": "0x0",
			"contract_address": "0x0616757a151c21f9be8775098d591c2807316d992bbc3bb1a5c1821630589256",
			"entry_point_selector": "0x1b64b1b3b690b43b9b514fb81377518f4039cd3e4f4914d8a6bdf01d679fb19",
			"nonce": "0x19b255",
			"calldata": ["0xae0ee0a63a2ce6baeeffe56e7714fb4efe48d419", "0x1", "0x0F"]
		}
	}`

	blockJson = `{"block_number": 1024, "timestamp": 1684054000, "transactions": []}`
)

func newGateway(t *testing.T, handler http.HandlerFunc) *FeederClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultFeederClientConfig()
	cfg.Endpoint = server.URL
	cfg.RetryCount = 0

	client, err := NewFeederClient(cfg, logging.Nop())
	require.NoError(t, err)
	return client
}

func writeJson(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestGetHandlerTx(t *testing.T) {
	t.Parallel()

	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case getTransactionPath:
			if r.URL.Query().Get("transactionHash") != handlerTxHash {
				writeJson(w, http.StatusOK, `{"status": "NOT_RECEIVED"}`)
				return
			}
			writeJson(w, http.StatusOK, handlerTxJson)
		case getBlockPath:
			if r.URL.Query().Get("blockNumber") != "1024" {
				writeJson(w, http.StatusBadRequest, `{"code": "StarknetErrorCode.BLOCK_NOT_FOUND", "message": "no such block"}`)
				return
			}
			writeJson(w, http.StatusOK, blockJson)
		default:
			http.NotFound(w, r)
		}
	})

	tx, ts, err := client.GetHandlerTx(t.Context(), felt.MustFromHex(handlerTxHash))
	require.NoError(t, err)
	require.Equal(t, uint64(1684054000), ts)
	require.True(t, tx.IsL1Handler())
	require.Equal(t, felt.MustFromHex(handlerTxHash), tx.TransactionHash)
	require.Equal(t, felt.MustFromHex("0x616757a151c21f9be8775098d591c2807316d992bbc3bb1a5c1821630589256"), tx.ContractAddress)
	require.Equal(t, felt.MustFromHex("0x19b255"), tx.Nonce)
	require.Equal(t, []felt.Felt{
		felt.MustFromHex("0xae0ee0a63a2ce6baeeffe56e7714fb4efe48d419"),
		felt.New(1),
		felt.New(15),
	}, tx.Calldata)

	_, err = client.GetTransaction(t.Context(), felt.New(1))
	require.ErrorIs(t, err, ErrTxNotFound)

	_, err = client.GetBlockTimestamp(t.Context(), 7)
	require.ErrorIs(t, err, ErrFeederGateway)
	require.ErrorContains(t, err, "BLOCK_NOT_FOUND")
}

func TestGetHandlerTxPending(t *testing.T) {
	t.Parallel()

	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, http.StatusOK, `{
			"status": "RECEIVED",
			"transaction": {"type": "L1_HANDLER", "transaction_hash": "0x1", "calldata": []}
		}`)
	})

	_, _, err := client.GetHandlerTx(t.Context(), felt.New(1))
	require.ErrorIs(t, err, ErrTxNotIncluded)
}

func TestFeederGatewayServerError(t *testing.T) {
	t.Parallel()

	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	})

	_, err := client.GetTransaction(t.Context(), felt.New(1))
	require.ErrorIs(t, err, ErrFeederGateway)
	require.ErrorContains(t, err, "503")
}

func TestFeederClientConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultFeederClientConfig()
	require.Error(t, cfg.Validate())

	cfg.Endpoint = "http://localhost:9545"
	require.NoError(t, cfg.Validate())

	cfg.Timeout = 0
	require.Error(t, cfg.Validate())
}
