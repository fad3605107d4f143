package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inventory-stock-ledger/internal/domain/ledger"
	"github.com/inventory-stock-ledger/internal/server/middleware"
	"github.com/inventory-stock-ledger/internal/server/service"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, fields ledger.Fields, requestID string) (*ledger.Transaction, error) {
	args := m.Called(ctx, fields, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context) ([]*ledger.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.Fields, requestID string) (*ledger.Transaction, error) {
	args := m.Called(ctx, id, fields, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testTransaction(itemName string) *ledger.Transaction {
	now := time.Now()
	return &ledger.Transaction{
		ID:        uuid.New(),
		Date:      "2024-03-02",
		Type:      "IN",
		ItemName:  itemName,
		NameKey:   "oil",
		Quantity:  "10 kg",
		AltQty:    "50",
		Unit:      "ltr",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTransactionHandler_Create(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		tx := testTransaction("Oil")

		mockService.On("CreateTransaction", mock.Anything, ledger.Fields{
			Date: "2024-03-02", Type: "IN", ItemName: "Oil", Quantity: "10 kg", AltQty: "50", Unit: "ltr",
		}, "").Return(tx, nil)

		router := setupTestRouter()
		router.POST("/transactions", handler.Create)

		jsonBody, _ := json.Marshal(TransactionRequest{
			Date: "2024-03-02", Type: "IN", ItemName: "Oil", Quantity: "10 kg", AltQty: "50", Unit: "ltr",
		})
		req, _ := http.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody TransactionResponse
		decodeResponse(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, tx.ID.String(), responseBody.ID)
		assert.Equal(t, "10 kg", responseBody.Quantity, "quantity text is stored and reported verbatim")
		assert.Equal(t, "Oil", responseBody.ItemName)
		mockService.AssertExpectations(t)
	})

	t.Run("RequestIDPropagated", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		tx := testTransaction("Oil")

		mockService.On("CreateTransaction", mock.Anything, mock.AnythingOfType("ledger.Fields"), "req-42").
			Return(tx, nil)

		router := setupTestRouter()
		router.Use(middleware.RequestID())
		router.POST("/transactions", handler.Create)

		jsonBody, _ := json.Marshal(TransactionRequest{Date: "2024-03-02", ItemName: "Oil", Quantity: "10"})
		req, _ := http.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", "req-42")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeResponse(t, rr.Body.Bytes(), nil)
		assert.Equal(t, "req-42", resp.RequestID)
		mockService.AssertExpectations(t)
	})

	t.Run("NumericQuantityAccepted", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		tx := testTransaction("Oil")

		mockService.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(fields ledger.Fields) bool {
			return fields.Quantity == "12.5"
		}), "").Return(tx, nil)

		router := setupTestRouter()
		router.POST("/transactions", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/transactions",
			bytes.NewBufferString(`{"date":"2024-03-02","item_name":"Oil","quantity":12.5}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRequestBody", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/transactions", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(`{"date":`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr.Body.Bytes(), nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingItemName", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/transactions", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(`{"date":"2024-03-02"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DomainValidationError", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		mockService.On("CreateTransaction", mock.Anything, mock.AnythingOfType("ledger.Fields"), "").
			Return(nil, ledger.ErrEmptyDate)

		router := setupTestRouter()
		router.POST("/transactions", handler.Create)

		jsonBody, _ := json.Marshal(TransactionRequest{Date: "   ", ItemName: "Oil"})
		req, _ := http.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr.Body.Bytes(), nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		mockService.On("CreateTransaction", mock.Anything, mock.AnythingOfType("ledger.Fields"), "").
			Return(nil, errors.New("database error"))

		router := setupTestRouter()
		router.POST("/transactions", handler.Create)

		jsonBody, _ := json.Marshal(TransactionRequest{Date: "2024-03-02", ItemName: "Oil"})
		req, _ := http.NewRequest(http.MethodPost, "/transactions", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestTransactionHandler_GetByID(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		tx := testTransaction("Oil")

		mockService.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil)

		router := setupTestRouter()
		router.GET("/transactions/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+tx.ID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody TransactionResponse
		decodeResponse(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, tx.ID.String(), responseBody.ID)
		assert.Equal(t, "2024-03-02", responseBody.Date)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/transactions/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/not-a-uuid", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr.Body.Bytes(), nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_ID", resp.Error.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		mockService.On("GetTransactionByID", mock.Anything, txID).
			Return(nil, ledger.ErrTransactionNotFound{TransactionID: txID})

		router := setupTestRouter()
		router.GET("/transactions/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+txID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		resp := decodeResponse(t, rr.Body.Bytes(), nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		mockService.On("GetTransactionByID", mock.Anything, txID).Return(nil, errors.New("database error"))

		router := setupTestRouter()
		router.GET("/transactions/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+txID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestTransactionHandler_List(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		rows := []*ledger.Transaction{testTransaction("Oil"), testTransaction("oil ")}

		mockService.On("ListTransactions", mock.Anything).Return(rows, nil)

		router := setupTestRouter()
		router.GET("/transactions", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody []TransactionResponse
		decodeResponse(t, rr.Body.Bytes(), &responseBody)
		require.Len(t, responseBody, 2)
		assert.Equal(t, "Oil", responseBody[0].ItemName)
		assert.Equal(t, "oil ", responseBody[1].ItemName)
		mockService.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		mockService.On("ListTransactions", mock.Anything).Return([]*ledger.Transaction{}, nil)

		router := setupTestRouter()
		router.GET("/transactions", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		mockService.On("ListTransactions", mock.Anything).Return(nil, errors.New("database error"))

		router := setupTestRouter()
		router.GET("/transactions", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/transactions", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestTransactionHandler_Update(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	reqBody := TransactionRequest{Date: "2024-03-05", Type: "OUT", ItemName: "Oil", Quantity: "4"}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		tx := testTransaction("Oil")
		tx.Date = "2024-03-05"
		tx.Type = "OUT"
		tx.Quantity = "4"

		mockService.On("UpdateTransaction", mock.Anything, tx.ID, ledger.Fields{
			Date: "2024-03-05", Type: "OUT", ItemName: "Oil", Quantity: "4",
		}, "").Return(tx, nil)

		router := setupTestRouter()
		router.PUT("/transactions/:id", handler.Update)

		jsonBody, _ := json.Marshal(reqBody)
		req, _ := http.NewRequest(http.MethodPut, "/transactions/"+tx.ID.String(), bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody TransactionResponse
		decodeResponse(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, "2024-03-05", responseBody.Date)
		assert.Equal(t, "OUT", responseBody.Type)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		mockService.On("UpdateTransaction", mock.Anything, txID, mock.AnythingOfType("ledger.Fields"), "").
			Return(nil, ledger.ErrTransactionNotFound{TransactionID: txID})

		router := setupTestRouter()
		router.PUT("/transactions/:id", handler.Update)

		jsonBody, _ := json.Marshal(reqBody)
		req, _ := http.NewRequest(http.MethodPut, "/transactions/"+txID.String(), bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRequestBody", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		router := setupTestRouter()
		router.PUT("/transactions/:id", handler.Update)

		req, _ := http.NewRequest(http.MethodPut, "/transactions/"+txID.String(), bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		mockService.On("UpdateTransaction", mock.Anything, txID, mock.AnythingOfType("ledger.Fields"), "").
			Return(nil, errors.New("database error"))

		router := setupTestRouter()
		router.PUT("/transactions/:id", handler.Update)

		jsonBody, _ := json.Marshal(reqBody)
		req, _ := http.NewRequest(http.MethodPut, "/transactions/"+txID.String(), bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestTransactionHandler_Delete(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		mockService.On("DeleteTransaction", mock.Anything, txID).Return(nil)

		router := setupTestRouter()
		router.DELETE("/transactions/:id", handler.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/"+txID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), txID.String())
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)
		txID := uuid.New()

		mockService.On("DeleteTransaction", mock.Anything, txID).
			Return(ledger.ErrTransactionNotFound{TransactionID: txID})

		router := setupTestRouter()
		router.DELETE("/transactions/:id", handler.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/"+txID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		mockService := new(MockTransactionService)
		handler := NewTransactionHandler(logger, mockService)

		router := setupTestRouter()
		router.DELETE("/transactions/:id", handler.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/transactions/not-a-uuid", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})
}

var _ service.TransactionService = (*MockTransactionService)(nil)
