// Package source provides the two RowSource implementations: the
// lmsys/mt_bench_human_judgments dataset served by the Hugging Face
// datasets-server API, and the embedded offline fallback sample.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/ahrav/go-mtsample/internal/domain"
	"github.com/ahrav/go-mtsample/internal/ports"
)

const (
	datasetsServerBase = "https://datasets-server.huggingface.co"

	// The judgment dataset this tool samples. Not versioned or pinned;
	// upstream row ordering may drift between runs.
	datasetName   = "lmsys/mt_bench_human_judgments"
	datasetConfig = "default"
	datasetSplit  = "human"

	// pageLength is the datasets-server maximum page size.
	pageLength = 100

	userAgent = "go-mtsample/1.0"
)

// HuggingFaceSource fetches human judgment records from the Hugging
// Face datasets-server rows API and maps them to comparison rows.
// Requests are paced with a token bucket so paginated fetches stay
// well under the API's rate limits.
type HuggingFaceSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ ports.RowSource = (*HuggingFaceSource)(nil)

// NewHuggingFaceSource returns a source backed by the public
// datasets-server endpoint with a 30 second per-request timeout.
func NewHuggingFaceSource(logger *slog.Logger) *HuggingFaceSource {
	return newHuggingFaceSource(datasetsServerBase, &http.Client{Timeout: 30 * time.Second}, logger)
}

func newHuggingFaceSource(baseURL string, client *http.Client, logger *slog.Logger) *HuggingFaceSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &HuggingFaceSource{
		baseURL: baseURL,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(4), 1),
		logger:  logger,
	}
}

// Name implements ports.RowSource.
func (s *HuggingFaceSource) Name() string { return datasetName }

// message is one turn of a recorded conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// judgmentRecord mirrors one row of the judgment dataset as served by
// the datasets-server API.
type judgmentRecord struct {
	QuestionID    *int64    `json:"question_id"`
	ModelA        string    `json:"model_a"`
	ModelB        string    `json:"model_b"`
	Winner        string    `json:"winner"`
	Judge         string    `json:"judge"`
	ConversationA []message `json:"conversation_a"`
	ConversationB []message `json:"conversation_b"`
	Turn          int       `json:"turn"`
}

// rowsResponse is the paginated envelope returned by the /rows endpoint.
type rowsResponse struct {
	Rows []struct {
		RowIdx int            `json:"row_idx"`
		Row    judgmentRecord `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Fetch retrieves every judgment record page by page and maps each one
// to a comparison row, skipping records that fail the row invariants.
// A transport failure on the first page wraps domain.ErrSourceUnavailable;
// any later failure abandons the whole fetch with no partial result.
func (s *HuggingFaceSource) Fetch(ctx context.Context) ([]domain.ComparisonRow, error) {
	var rows []domain.ComparisonRow
	offset := 0
	for {
		page, err := s.fetchPage(ctx, offset)
		if err != nil {
			if offset == 0 {
				return nil, err
			}
			return nil, fmt.Errorf("page at offset %d: %w", offset, err)
		}

		for _, entry := range page.Rows {
			row, ok := rowFromRecord(entry.Row, int64(len(rows)))
			if !ok {
				continue
			}
			rows = append(rows, row)
		}

		offset += len(page.Rows)
		if len(page.Rows) == 0 || offset >= page.NumRowsTotal {
			break
		}
	}

	s.logger.Debug("fetched judgment dataset",
		"source", s.Name(), "accepted_rows", len(rows))
	return rows, nil
}

func (s *HuggingFaceSource) fetchPage(ctx context.Context, offset int) (*rowsResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	query := url.Values{}
	query.Set("dataset", datasetName)
	query.Set("config", datasetConfig)
	query.Set("split", datasetSplit)
	query.Set("offset", fmt.Sprintf("%d", offset))
	query.Set("length", fmt.Sprintf("%d", pageLength))
	endpoint := fmt.Sprintf("%s/rows?%s", s.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if offset == 0 {
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datasets-server returned status %d", resp.StatusCode)
	}

	var page rowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode rows response: %w", err)
	}
	return &page, nil
}

// rowFromRecord maps a judgment record to a comparison row. The prompt
// is the first user message of conversation A; the options are the
// first assistant reply of each conversation. fallbackID is used when
// the record carries no question identifier. The second return value
// is false when the record fails the row invariants.
func rowFromRecord(rec judgmentRecord, fallbackID int64) (domain.ComparisonRow, bool) {
	if len(rec.ConversationA) == 0 || len(rec.ConversationB) == 0 {
		return domain.ComparisonRow{}, false
	}

	var prompt string
	if rec.ConversationA[0].Role == "user" {
		prompt = domain.CleanText(rec.ConversationA[0].Content)
	}
	optionA := firstAssistantReply(rec.ConversationA)
	optionB := firstAssistantReply(rec.ConversationB)

	if prompt == "" || optionA == "" || optionB == "" {
		return domain.ComparisonRow{}, false
	}
	if utf8.RuneCountInString(optionA) > domain.MaxOptionChars ||
		utf8.RuneCountInString(optionB) > domain.MaxOptionChars {
		return domain.ComparisonRow{}, false
	}

	id := fallbackID
	if rec.QuestionID != nil {
		id = *rec.QuestionID
	}

	return domain.ComparisonRow{
		ID:      id,
		Prompt:  prompt,
		OptionA: optionA,
		OptionB: optionB,
		Gold:    goldFromWinner(rec.Winner),
	}, true
}

// firstAssistantReply returns the cleaned content of the second
// message when it is an assistant turn, or "" otherwise.
func firstAssistantReply(conv []message) string {
	if len(conv) < 2 || conv[1].Role != "assistant" {
		return ""
	}
	return domain.CleanText(conv[1].Content)
}

// goldFromWinner maps the dataset's winner field to a gold label.
// Ties and unrecognized values yield no label.
func goldFromWinner(winner string) *domain.Gold {
	switch winner {
	case "model_a":
		g := domain.GoldA
		return &g
	case "model_b":
		g := domain.GoldB
		return &g
	default:
		return nil
	}
}
