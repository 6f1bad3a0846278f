package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cnft/internal/registry/handler/mocks"
	"cnft/internal/registry/models"
	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
	"cnft/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/registry-mocks.go -package=mocks Service
type RegistryHandlerSuite struct {
	suite.Suite
}

func TestRegistryHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistryHandlerSuite))
}

var (
	alice, _ = domain.ParseAddress("0x1111111111111111111111111111111111111111")
	bob, _   = domain.ParseAddress("0x2222222222222222222222222222222222222222")
)

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(mockService, logger, nil, nil), mockService
}

func authedRequest(method, target string, body []byte, requester domain.Address) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := requestcontext.WithRequester(req.Context(), requester)
	return req.WithContext(ctx)
}

func adminRequest(method, target string, body []byte, requester domain.Address) *http.Request {
	req := authedRequest(method, target, body, requester)
	return req.WithContext(requestcontext.WithAdmin(req.Context(), true))
}

func withURLParams(req *http.Request, pairs ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i < len(pairs); i += 2 {
		rctx.URLParams.Add(pairs[i], pairs[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleToken(id uint64, owner domain.Address) *models.Token {
	return &models.Token{
		ID:    domain.TokenID(id),
		Owner: owner,
		URI:   "ipfs://sample",
		Attributes: models.EncryptedAttributes{
			Rarity: hexutil.Bytes{1},
			Power:  hexutil.Bytes{2},
			Level:  hexutil.Bytes{3},
			Value:  hexutil.Bytes{4},
		},
		MintedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *RegistryHandlerSuite) TestHandleMint() {
	handler, mockService := newTestHandler(s.T())
	price := domain.DefaultMintPrice()

	mockService.EXPECT().MintSingle(gomock.Any(), gomock.Any(), price).
		Return(sampleToken(0, alice), nil)

	body, err := json.Marshal(MintRequest{
		Recipient: alice.Hex(),
		URI:       "ipfs://sample",
		Attributes: models.EncryptedAttributes{
			Rarity: hexutil.Bytes{1},
			Power:  hexutil.Bytes{2},
			Level:  hexutil.Bytes{3},
			Value:  hexutil.Bytes{4},
		},
		PaymentWei: price.String(),
	})
	require.NoError(s.T(), err)

	w := httptest.NewRecorder()
	handler.handleMint(w, authedRequest(http.MethodPost, "/tokens/mint", body, alice))

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp MintResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(s.T(), resp.Tokens, 1)
	assert.Equal(s.T(), uint64(0), resp.Tokens[0].ID)
	assert.Equal(s.T(), alice.Hex(), resp.Tokens[0].Owner)
	assert.NotNil(s.T(), resp.Tokens[0].Attributes)
}

func (s *RegistryHandlerSuite) TestHandleMint_InsufficientPayment() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().MintSingle(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeInsufficientPayment, "insufficient payment"))

	body, _ := json.Marshal(MintRequest{
		Recipient: alice.Hex(),
		URI:       "ipfs://sample",
		Attributes: models.EncryptedAttributes{
			Rarity: hexutil.Bytes{1}, Power: hexutil.Bytes{2}, Level: hexutil.Bytes{3}, Value: hexutil.Bytes{4},
		},
		PaymentWei: "1",
	})

	w := httptest.NewRecorder()
	handler.handleMint(w, authedRequest(http.MethodPost, "/tokens/mint", body, alice))

	assert.Equal(s.T(), http.StatusPaymentRequired, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "insufficient_payment", resp["error"])
}

func (s *RegistryHandlerSuite) TestHandleMint_BadRecipient() {
	handler, _ := newTestHandler(s.T())

	body, _ := json.Marshal(MintRequest{Recipient: "nope", URI: "ipfs://x", PaymentWei: "1"})
	w := httptest.NewRecorder()
	handler.handleMint(w, authedRequest(http.MethodPost, "/tokens/mint", body, alice))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RegistryHandlerSuite) TestHandleMint_InvalidBody() {
	handler, _ := newTestHandler(s.T())

	w := httptest.NewRecorder()
	handler.handleMint(w, authedRequest(http.MethodPost, "/tokens/mint", []byte("{"), alice))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RegistryHandlerSuite) TestHandleMintBatch_LengthMismatch() {
	handler, _ := newTestHandler(s.T())

	body, _ := json.Marshal(BatchMintRequest{
		Recipients: []string{alice.Hex(), bob.Hex()},
		URIs:       []string{"ipfs://a"},
		Rarity:     []hexutil.Bytes{{1}, {1}},
		Power:      []hexutil.Bytes{{1}, {1}},
		Level:      []hexutil.Bytes{{1}, {1}},
		Value:      []hexutil.Bytes{{1}, {1}},
		PaymentWei: "20000000000000000",
	})

	w := httptest.NewRecorder()
	handler.handleMintBatch(w, authedRequest(http.MethodPost, "/tokens/mint/batch", body, alice))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "length_mismatch", resp["error"])
}

func (s *RegistryHandlerSuite) TestHandleMintBatch() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().MintBatch(gomock.Any(), gomock.Len(2), gomock.Any()).
		Return([]*models.Token{sampleToken(0, alice), sampleToken(1, bob)}, nil)

	body, _ := json.Marshal(BatchMintRequest{
		Recipients: []string{alice.Hex(), bob.Hex()},
		URIs:       []string{"ipfs://a", "ipfs://b"},
		Rarity:     []hexutil.Bytes{{1}, {1}},
		Power:      []hexutil.Bytes{{1}, {1}},
		Level:      []hexutil.Bytes{{1}, {1}},
		Value:      []hexutil.Bytes{{1}, {1}},
		PaymentWei: "20000000000000000",
	})

	w := httptest.NewRecorder()
	handler.handleMintBatch(w, authedRequest(http.MethodPost, "/tokens/mint/batch", body, alice))

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp MintResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(s.T(), resp.Tokens, 2)
}

func (s *RegistryHandlerSuite) TestHandleGetToken_RedactsAttributes() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().GetToken(gomock.Any(), domain.TokenID(0)).Return(sampleToken(0, alice), nil)
	mockService.EXPECT().HasView(gomock.Any(), domain.TokenID(0), bob).Return(false, nil)

	req := withURLParams(authedRequest(http.MethodGet, "/tokens/0", nil, bob), "id", "0")
	w := httptest.NewRecorder()
	handler.handleGetToken(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp TokenResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(s.T(), resp.Attributes)
	assert.Equal(s.T(), alice.Hex(), resp.Owner)
}

func (s *RegistryHandlerSuite) TestHandleGetToken_OwnerSeesAttributes() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().GetToken(gomock.Any(), domain.TokenID(0)).Return(sampleToken(0, alice), nil)
	mockService.EXPECT().HasView(gomock.Any(), domain.TokenID(0), alice).Return(true, nil)

	req := withURLParams(authedRequest(http.MethodGet, "/tokens/0", nil, alice), "id", "0")
	w := httptest.NewRecorder()
	handler.handleGetToken(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp TokenResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(s.T(), resp.Attributes)
	assert.Equal(s.T(), hexutil.Bytes{1}, resp.Attributes.Rarity)
}

func (s *RegistryHandlerSuite) TestHandleGetToken_NotFound() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().GetToken(gomock.Any(), domain.TokenID(42)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "token does not exist"))

	req := withURLParams(authedRequest(http.MethodGet, "/tokens/42", nil, alice), "id", "42")
	w := httptest.NewRecorder()
	handler.handleGetToken(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *RegistryHandlerSuite) TestHandleTransfer() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().Transfer(gomock.Any(), domain.TokenID(0), alice, bob, alice).Return(nil)

	body, _ := json.Marshal(TransferRequest{From: alice.Hex(), To: bob.Hex()})
	req := withURLParams(authedRequest(http.MethodPost, "/tokens/0/transfer", body, alice), "id", "0")
	w := httptest.NewRecorder()
	handler.handleTransfer(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *RegistryHandlerSuite) TestHandleTransfer_NotOwner() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().Transfer(gomock.Any(), domain.TokenID(0), alice, bob, bob).
		Return(dErrors.New(dErrors.CodeNotOwner, "not the owner"))

	body, _ := json.Marshal(TransferRequest{From: alice.Hex(), To: bob.Hex()})
	req := withURLParams(authedRequest(http.MethodPost, "/tokens/0/transfer", body, bob), "id", "0")
	w := httptest.NewRecorder()
	handler.handleTransfer(w, req)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_owner", resp["error"])
}

func (s *RegistryHandlerSuite) TestHandleGrant() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().GrantView(gomock.Any(), domain.TokenID(3), bob, alice).Return(nil)

	body, _ := json.Marshal(GrantRequest{Viewer: bob.Hex()})
	req := withURLParams(authedRequest(http.MethodPost, "/tokens/3/permissions", body, alice), "id", "3")
	w := httptest.NewRecorder()
	handler.handleGrant(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *RegistryHandlerSuite) TestHandleRevoke() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().RevokeView(gomock.Any(), domain.TokenID(3), bob, alice).Return(nil)

	req := withURLParams(
		authedRequest(http.MethodDelete, "/tokens/3/permissions/"+bob.Hex(), nil, alice),
		"id", "3", "viewer", bob.Hex(),
	)
	w := httptest.NewRecorder()
	handler.handleRevoke(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *RegistryHandlerSuite) TestHandleHasPermission() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().HasView(gomock.Any(), domain.TokenID(3), bob).Return(true, nil)

	req := withURLParams(
		authedRequest(http.MethodGet, "/tokens/3/permissions/"+bob.Hex(), nil, alice),
		"id", "3", "viewer", bob.Hex(),
	)
	w := httptest.NewRecorder()
	handler.handleHasPermission(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp PermissionResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.Allowed)
	assert.Equal(s.T(), uint64(3), resp.TokenID)
}

func (s *RegistryHandlerSuite) TestHandleGetRegistry() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().NextTokenID(gomock.Any()).Return(domain.TokenID(5), nil)
	mockService.EXPECT().TreasuryBalance(gomock.Any()).Return(big.NewInt(123), nil)
	mockService.EXPECT().Name().Return("ConfidentialNFT")
	mockService.EXPECT().Symbol().Return("CNFT")
	mockService.EXPECT().MintPrice(gomock.Any()).Return(domain.DefaultMintPrice())
	mockService.EXPECT().MaxSupply().Return(uint64(10_000))

	w := httptest.NewRecorder()
	handler.handleGetRegistry(w, httptest.NewRequest(http.MethodGet, "/registry", nil))

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp RegistryResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "ConfidentialNFT", resp.Name)
	assert.Equal(s.T(), "CNFT", resp.Symbol)
	assert.Equal(s.T(), uint64(5), resp.NextTokenID)
	assert.Equal(s.T(), "123", resp.TreasuryBalanceWei)
}

func (s *RegistryHandlerSuite) TestHandleSetMintPrice() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().SetMintPrice(gomock.Any(), big.NewInt(5), alice).Return(nil)

	body, _ := json.Marshal(SetMintPriceRequest{PriceWei: "5"})
	w := httptest.NewRecorder()
	handler.handleSetMintPrice(w, adminRequest(http.MethodPut, "/admin/mint-price", body, alice))

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

// A token without the admin scope never reaches the service, even when it is
// bound to the admin's own address.
func (s *RegistryHandlerSuite) TestHandleSetMintPrice_WithoutAdminScope() {
	handler, _ := newTestHandler(s.T())

	body, _ := json.Marshal(SetMintPriceRequest{PriceWei: "5"})
	w := httptest.NewRecorder()
	handler.handleSetMintPrice(w, authedRequest(http.MethodPut, "/admin/mint-price", body, alice))

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_admin", resp["error"])
}

func (s *RegistryHandlerSuite) TestHandleWithdraw() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().Withdraw(gomock.Any(), alice).Return(big.NewInt(777), nil)

	w := httptest.NewRecorder()
	handler.handleWithdraw(w, adminRequest(http.MethodPost, "/admin/withdraw", nil, alice))

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp WithdrawResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "777", resp.AmountWei)
}

func (s *RegistryHandlerSuite) TestHandleWithdraw_Empty() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().Withdraw(gomock.Any(), alice).
		Return(nil, dErrors.New(dErrors.CodeNothingToWithdraw, "treasury is empty"))

	w := httptest.NewRecorder()
	handler.handleWithdraw(w, adminRequest(http.MethodPost, "/admin/withdraw", nil, alice))

	assert.Equal(s.T(), http.StatusConflict, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "nothing_to_withdraw", resp["error"])
}

func (s *RegistryHandlerSuite) TestHandleWithdraw_WithoutAdminScope() {
	handler, _ := newTestHandler(s.T())

	w := httptest.NewRecorder()
	handler.handleWithdraw(w, authedRequest(http.MethodPost, "/admin/withdraw", nil, alice))

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_admin", resp["error"])
}
