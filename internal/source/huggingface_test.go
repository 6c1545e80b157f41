package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-mtsample/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// judgment builds a well-formed single-turn record.
func judgment(qid int64, winner, prompt, optionA, optionB string) judgmentRecord {
	return judgmentRecord{
		QuestionID: &qid,
		ModelA:     "model-a",
		ModelB:     "model-b",
		Winner:     winner,
		Judge:      "human",
		ConversationA: []message{
			{Role: "user", Content: prompt},
			{Role: "assistant", Content: optionA},
		},
		ConversationB: []message{
			{Role: "user", Content: prompt},
			{Role: "assistant", Content: optionB},
		},
		Turn: 1,
	}
}

// newDatasetServer serves records in pages of perPage rows, mimicking
// the datasets-server /rows endpoint closely enough for the client.
func newDatasetServer(t *testing.T, records []judgmentRecord, perPage int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
		assert.NoError(t, err)

		end := offset + perPage
		if end > len(records) {
			end = len(records)
		}

		entries := make([]map[string]any, 0, end-offset)
		for i := offset; i < end; i++ {
			entries = append(entries, map[string]any{"row_idx": i, "row": records[i]})
		}

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"rows":           entries,
			"num_rows_total": len(records),
		}))
	}))
}

// TestHuggingFaceFetchMapsRecords covers the record-to-row mapping:
// winner translation, question id handling, and every skip condition.
func TestHuggingFaceFetchMapsRecords(t *testing.T) {
	noID := judgment(0, "model_a", "Prompt without id?", "Good answer.", "Bad answer.")
	noID.QuestionID = nil

	userOnly := judgment(200, "model_a", "Unanswered prompt?", "x", "y")
	userOnly.ConversationA = userOnly.ConversationA[:1]

	tooLong := judgment(201, "model_a", "Long answer prompt?",
		strings.Repeat("x", domain.MaxOptionChars+1), "Short answer.")

	blankReply := judgment(202, "model_b", "Blank reply prompt?", "Fine.", "  \n ")

	assistantFirst := judgment(203, "model_a", "Swapped roles?", "a", "b")
	assistantFirst.ConversationA[0].Role = "assistant"

	emptyConvB := judgment(204, "model_a", "Missing conversation?", "a", "b")
	emptyConvB.ConversationB = nil

	records := []judgmentRecord{
		judgment(81, "model_a", "Which option is clearer?", "Clear answer.", "Muddled answer."),
		judgment(82, "model_b", "Which option is funnier?", "Dry answer.", "Witty answer."),
		judgment(83, "tie", "Which option is longer?", "Same length.", "Same length!"),
		noID,
		userOnly,
		tooLong,
		blankReply,
		assistantFirst,
		emptyConvB,
	}

	server := newDatasetServer(t, records, len(records))
	defer server.Close()

	src := newHuggingFaceSource(server.URL, server.Client(), testLogger())
	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, int64(81), rows[0].ID)
	require.NotNil(t, rows[0].Gold)
	assert.Equal(t, domain.GoldA, *rows[0].Gold)

	assert.Equal(t, int64(82), rows[1].ID)
	require.NotNil(t, rows[1].Gold)
	assert.Equal(t, domain.GoldB, *rows[1].Gold)

	assert.Equal(t, int64(83), rows[2].ID)
	assert.Nil(t, rows[2].Gold, "a tie carries no gold label")

	// A record without a question id falls back to a counter over
	// accepted rows.
	assert.Equal(t, int64(3), rows[3].ID)

	for _, row := range rows {
		assert.NoError(t, row.Validate())
	}
}

func TestHuggingFaceFetchPaginates(t *testing.T) {
	records := make([]judgmentRecord, 0, 5)
	for i := range 5 {
		records = append(records, judgment(int64(100+i), "model_a",
			fmt.Sprintf("Prompt %d?", i),
			fmt.Sprintf("Answer A %d.", i),
			fmt.Sprintf("Answer B %d.", i)))
	}

	server := newDatasetServer(t, records, 2)
	defer server.Close()

	src := newHuggingFaceSource(server.URL, server.Client(), testLogger())
	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, int64(100+i), row.ID)
	}
}

// TestHuggingFaceFetchUnavailable distinguishes an unreachable source
// from a fetch that failed partway through.
func TestHuggingFaceFetchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	src := newHuggingFaceSource(server.URL, &http.Client{}, testLogger())
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestHuggingFaceFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	src := newHuggingFaceSource(server.URL, server.Client(), testLogger())
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}

// TestHuggingFaceFetchNoPartialResults verifies a mid-fetch failure
// abandons the whole path instead of returning the pages already read.
func TestHuggingFaceFetchNoPartialResults(t *testing.T) {
	records := []judgmentRecord{
		judgment(1, "model_a", "First prompt?", "a", "b"),
		judgment(2, "model_a", "Second prompt?", "a", "b"),
		judgment(3, "model_a", "Third prompt?", "a", "b"),
	}

	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount > 1 {
			http.Error(w, "flaky upstream", http.StatusBadGateway)
			return
		}
		entries := []map[string]any{
			{"row_idx": 0, "row": records[0]},
			{"row_idx": 1, "row": records[1]},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"rows":           entries,
			"num_rows_total": len(records),
		}))
	}))
	defer server.Close()

	src := newHuggingFaceSource(server.URL, server.Client(), testLogger())
	rows, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}
