package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"trivia-quiz/internal/domain"
)

// DefaultBaseURL is the public Open Trivia Database endpoint.
const DefaultBaseURL = "https://opentdb.com"

// RawQuestion is a question record exactly as the API returns it.
// Text fields are HTML-escaped.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionsResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

// Client talks to the Open Trivia Database.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient gets a client
// without a timeout, so a slow API leaves the caller waiting.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// FetchQuestions reads amount questions from a single category.
func (c *Client) FetchQuestions(ctx context.Context, categoryID, amount int) ([]RawQuestion, error) {
	query := url.Values{}
	query.Set("amount", strconv.Itoa(amount))
	query.Set("category", strconv.Itoa(categoryID))

	var body questionsResponse
	if err := c.getJSON(ctx, "/api.php?"+query.Encode(), &body); err != nil {
		return nil, err
	}
	if body.ResponseCode != CodeSuccess {
		return nil, &ResponseCodeError{Code: body.ResponseCode}
	}
	if len(body.Results) == 0 {
		return nil, domain.ErrNoResults
	}
	return body.Results, nil
}

// LoadCategories lists the categories the API knows about.
func (c *Client) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	var body categoriesResponse
	if err := c.getJSON(ctx, "/api_category.php", &body); err != nil {
		return nil, err
	}
	if len(body.TriviaCategories) == 0 {
		return nil, domain.ErrCategoriesUnavailable
	}
	return body.TriviaCategories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: req.URL.String(), Status: resp.Status, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
