package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"souq-market/internal/app"
	"souq-market/internal/config"
	model "souq-market/internal/models"
	"souq-market/internal/repository"
	"souq-market/internal/server"
	"souq-market/internal/settlement"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
)

const (
	sellerID int64 = 1
	buyerA   int64 = 2
	buyerB   int64 = 3
	buyerC   int64 = 4

	dallahID int64 = 10
	rugID    int64 = 11
)

// testEnv is the full router over the in-memory store, with a token per seeded user
type testEnv struct {
	app    *app.App
	router *gin.Engine
	tokens map[int64]string
}

// SetupTestEnv wires the application exactly as main does, over a seeded memory store.
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Store:          config.StoreMemory,
		JWTSecret:      "integration-secret",
		CommissionRate: settlement.DefaultCommissionRate,
	}
	a, err := app.Build(context.Background(), cfg, seedCatalog)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(a.Close)

	jwtService := utils.NewJWTService(cfg.JWTSecret)
	env := &testEnv{
		app:    a,
		router: server.SetupRouter(a.Services(), jwtService),
		tokens: map[int64]string{},
	}
	for _, id := range []int64{sellerID, buyerA, buyerB, buyerC} {
		token, err := jwtService.GenerateToken(id)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		env.tokens[id] = token
	}
	return env
}

func seedCatalog(repo *repository.MemoryRepo) {
	repo.AddUser(model.User{ID: sellerID, Name: "Ali Hassan", SellerName: "Baghdad Antiques"})
	repo.AddUser(model.User{ID: buyerA, Name: "Zainab Kareem"})
	repo.AddUser(model.User{ID: buyerB, Name: "Omar Saleh"})
	repo.AddUser(model.User{ID: buyerC, Name: "Huda Jabbar"})
	repo.AddProduct(model.Product{ID: dallahID, SellerID: sellerID, Name: "Brass coffee dallah", Price: 100000, Status: "available"})
	repo.AddProduct(model.Product{ID: rugID, SellerID: sellerID, Name: "Kashan rug", Price: 750000, Status: "available"})
}

// Do executes a request as user (0 for anonymous) and parses the envelope.
func (e *testEnv) Do(t *testing.T, user int64, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if user != 0 {
		req.Header.Set("Authorization", "Bearer "+e.tokens[user])
	}
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// CreateAuction opens an auction as the seller and returns its ID
func (e *testEnv) CreateAuction(t *testing.T, productID, startPrice int64, hours string) int64 {
	t.Helper()
	resp, w := e.Do(t, sellerID, "POST", "/auctions", map[string]any{
		"product_id":     productID,
		"start_price":    startPrice,
		"duration_hours": hours,
	})
	if w.Code != 201 {
		t.Fatalf("create auction: status %d body %s", w.Code, w.Body.String())
	}
	return int64(resp["data"].(map[string]any)["auction_id"].(float64))
}

func auctionPath(id int64, suffix string) string {
	return fmt.Sprintf("/auctions/%d%s", id, suffix)
}
