package integrationtests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// Buyer asks the seller about a product and the seller answers
func TestConversationFlow(t *testing.T) {
	env := SetupTestEnv(t)

	resp, w := env.Do(t, buyerA, http.MethodPost, "/conversations", map[string]any{"seller_id": sellerID, "product_id": dallahID})
	require.Equal(t, http.StatusOK, w.Code)
	conv := resp["data"].(map[string]any)
	convID := int64(conv["id"].(float64))

	// opening it again returns the same conversation
	resp, w = env.Do(t, buyerA, http.MethodPost, "/conversations", map[string]any{"seller_id": sellerID, "product_id": dallahID})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(convID), resp["data"].(map[string]any)["id"])

	messagesPath := fmt.Sprintf("/conversations/%d/messages", convID)
	readPath := fmt.Sprintf("/conversations/%d/read", convID)

	_, w = env.Do(t, buyerA, http.MethodPost, messagesPath, map[string]any{"receiver_id": sellerID, "content": "هل الدلة نحاس أصلي؟"})
	require.Equal(t, http.StatusCreated, w.Code)
	_, w = env.Do(t, buyerA, http.MethodPost, messagesPath, map[string]any{"receiver_id": sellerID, "content": "وكم أقل سعر؟"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w = env.Do(t, sellerID, http.MethodGet, "/conversations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inbox := resp["data"].([]any)
	require.Len(t, inbox, 1)
	entry := inbox[0].(map[string]any)
	require.Equal(t, float64(2), entry["unread_count"])
	require.Equal(t, float64(buyerA), entry["other_user"].(map[string]any)["id"])
	require.Equal(t, "Brass coffee dallah", entry["product"].(map[string]any)["name"])

	resp, w = env.Do(t, sellerID, http.MethodGet, messagesPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := resp["data"].([]any)
	require.Len(t, msgs, 2)
	require.Equal(t, "هل الدلة نحاس أصلي؟", msgs[0].(map[string]any)["content"])

	resp, w = env.Do(t, sellerID, http.MethodPost, readPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(2), resp["data"].(map[string]any)["updated"])

	resp, _ = env.Do(t, sellerID, http.MethodGet, "/conversations", nil)
	require.Equal(t, float64(0), resp["data"].([]any)[0].(map[string]any)["unread_count"])

	_, w = env.Do(t, sellerID, http.MethodPost, messagesPath, map[string]any{"receiver_id": buyerA, "content": "نعم، أصلي"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, _ = env.Do(t, buyerA, http.MethodGet, "/conversations", nil)
	require.Equal(t, float64(1), resp["data"].([]any)[0].(map[string]any)["unread_count"])
}

func TestConversation_Access(t *testing.T) {
	env := SetupTestEnv(t)

	resp, w := env.Do(t, buyerA, http.MethodPost, "/conversations", map[string]any{"seller_id": sellerID})
	require.Equal(t, http.StatusOK, w.Code)
	convID := int64(resp["data"].(map[string]any)["id"].(float64))
	messagesPath := fmt.Sprintf("/conversations/%d/messages", convID)

	tests := []struct {
		name       string
		user       int64
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{name: "anonymous", user: 0, method: http.MethodGet, path: "/conversations", wantStatus: http.StatusUnauthorized},
		{name: "outsider_reads", user: buyerB, method: http.MethodGet, path: messagesPath, wantStatus: http.StatusForbidden},
		{name: "outsider_writes", user: buyerB, method: http.MethodPost, path: messagesPath, body: map[string]any{"receiver_id": sellerID, "content": "hi"}, wantStatus: http.StatusForbidden},
		{name: "outsider_marks_read", user: buyerB, method: http.MethodPost, path: fmt.Sprintf("/conversations/%d/read", convID), wantStatus: http.StatusForbidden},
		{name: "blank_message", user: buyerA, method: http.MethodPost, path: messagesPath, body: map[string]any{"receiver_id": sellerID, "content": "   "}, wantStatus: http.StatusBadRequest},
		{name: "unknown_conversation", user: buyerA, method: http.MethodGet, path: "/conversations/9999/messages", wantStatus: http.StatusNotFound},
		{name: "talk_to_self", user: sellerID, method: http.MethodPost, path: "/conversations", body: map[string]any{"seller_id": sellerID}, wantStatus: http.StatusBadRequest},
		{name: "unknown_seller", user: buyerA, method: http.MethodPost, path: "/conversations", body: map[string]any{"seller_id": 777}, wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, w := env.Do(t, tc.user, tc.method, tc.path, tc.body)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
