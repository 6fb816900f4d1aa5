package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/course"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/shared"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the SMS API client.
type ClientConfig struct {
	// BaseURL is the SMS API base URL
	BaseURL string

	// APIKey authenticates the service account
	APIKey string

	// Timeout is the HTTP request timeout
	Timeout time.Duration

	// RateLimiterConfig for API rate limiting
	RateLimiterConfig RateLimiterConfig

	// CircuitBreakerConfig for fault tolerance
	CircuitBreakerConfig CircuitBreakerConfig

	// RetryConfig for retry behavior
	RetryConfig RetryConfig

	// Logger for structured logging
	Logger *slog.Logger

	// Debug enables per-request debug logging
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:              baseURL,
		Timeout:              30 * time.Second,
		RateLimiterConfig:    DefaultRateLimiterConfig(),
		CircuitBreakerConfig: DefaultCircuitBreakerConfig(),
		RetryConfig:          DefaultRetryConfig(),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the SMS platform API client. It implements the snapshot
// fetcher's DataSource interface.
type Client struct {
	config         ClientConfig
	httpClient     *http.Client
	logger         *slog.Logger
	rateLimiter    *RateLimiter
	circuitBreaker *CircuitBreaker
	mapper         *Mapper
}

// NewClient creates a new SMS API client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger:         config.Logger,
		rateLimiter:    NewRateLimiter(config.RateLimiterConfig),
		circuitBreaker: NewCircuitBreaker(config.CircuitBreakerConfig),
		mapper:         NewMapper(),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT DATA OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentCourseSummary fetches the platform's precomputed academic
// standing for a student.
func (c *Client) GetStudentCourseSummary(ctx context.Context, studentID string) (evaluation.StudentCourseSummary, error) {
	path := fmt.Sprintf("/students/%s/course-summary", url.PathEscape(studentID))

	var response APIResponse[CourseSummaryDTO]
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return evaluation.StudentCourseSummary{}, fmt.Errorf("get course summary %s: %w", studentID, err)
	}
	if !response.Success {
		return evaluation.StudentCourseSummary{}, shared.WrapError("sms", "GetStudentCourseSummary", shared.ErrExternalService, response.Error, nil)
	}

	return c.mapper.CourseSummaryFromDTO(studentID, response.Data), nil
}

// GetAttendance fetches all attendance records for a student.
func (c *Client) GetAttendance(ctx context.Context, studentID string) ([]evaluation.AttendanceRecord, error) {
	path := fmt.Sprintf("/students/%s/attendance", url.PathEscape(studentID))

	var response APIResponse[[]AttendanceRecordDTO]
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("get attendance %s: %w", studentID, err)
	}
	if !response.Success {
		return nil, shared.WrapError("sms", "GetAttendance", shared.ErrExternalService, response.Error, nil)
	}

	return c.mapper.AttendanceFromDTO(studentID, response.Data), nil
}

// GetGrades fetches all formal grade records for a student.
func (c *Client) GetGrades(ctx context.Context, studentID string) ([]evaluation.GradeRecord, error) {
	path := fmt.Sprintf("/students/%s/grades", url.PathEscape(studentID))

	var response APIResponse[[]GradeRecordDTO]
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("get grades %s: %w", studentID, err)
	}
	if !response.Success {
		return nil, shared.WrapError("sms", "GetGrades", shared.ErrExternalService, response.Error, nil)
	}

	return c.mapper.GradesFromDTO(studentID, response.Data), nil
}

// GetDailyPerformance fetches all daily performance records for a student.
func (c *Client) GetDailyPerformance(ctx context.Context, studentID string) ([]evaluation.DailyPerformanceRecord, error) {
	path := fmt.Sprintf("/students/%s/daily-performance", url.PathEscape(studentID))

	var response APIResponse[[]DailyPerformanceRecordDTO]
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("get daily performance %s: %w", studentID, err)
	}
	if !response.Success {
		return nil, shared.WrapError("sms", "GetDailyPerformance", shared.ErrExternalService, response.Error, nil)
	}

	return c.mapper.DailyPerformanceFromDTO(studentID, response.Data), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// rosterPageSize is the per_page value used when walking paginated
// roster endpoints.
const rosterPageSize = 100

// ListStudents fetches the full student roster, handling pagination.
// Rows the mapper rejects are skipped with a warning rather than
// failing the whole import.
func (c *Client) ListStudents(ctx context.Context) ([]*student.Student, error) {
	var students []*student.Student
	page := 1

	for {
		path := fmt.Sprintf("/students?page=%d&per_page=%d", page, rosterPageSize)

		var response APIResponse[[]StudentDTO]
		if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
			return nil, fmt.Errorf("list students page %d: %w", page, err)
		}
		if !response.Success {
			return nil, shared.WrapError("sms", "ListStudents", shared.ErrExternalService, response.Error, nil)
		}

		for _, dto := range response.Data {
			st, err := c.mapper.StudentFromDTO(dto)
			if err != nil {
				c.logger.Warn("skipping invalid roster row", "student_id", dto.ID, "error", err)
				continue
			}
			students = append(students, st)
		}

		if len(response.Data) < rosterPageSize ||
			(response.Meta != nil && page >= response.Meta.TotalPages) {
			break
		}
		page++
	}

	return students, nil
}

// ListCourses fetches the full course catalog, handling pagination.
func (c *Client) ListCourses(ctx context.Context) ([]*course.Course, error) {
	var courses []*course.Course
	page := 1

	for {
		path := fmt.Sprintf("/courses?page=%d&per_page=%d", page, rosterPageSize)

		var response APIResponse[[]CourseDTO]
		if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
			return nil, fmt.Errorf("list courses page %d: %w", page, err)
		}
		if !response.Success {
			return nil, shared.WrapError("sms", "ListCourses", shared.ErrExternalService, response.Error, nil)
		}

		for _, dto := range response.Data {
			crs, err := c.mapper.CourseFromDTO(dto)
			if err != nil {
				c.logger.Warn("skipping invalid catalog row", "course_id", dto.ID, "error", err)
				continue
			}
			courses = append(courses, crs)
		}

		if len(response.Data) < rosterPageSize ||
			(response.Meta != nil && page >= response.Meta.TotalPages) {
			break
		}
		page++
	}

	return courses, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HTTP REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// doRequest performs an HTTP request with rate limiting, circuit
// breaking, and bounded retries.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if err := c.circuitBreaker.Allow(); err != nil {
		return fmt.Errorf("circuit breaker: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.RetryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.config.RetryConfig.CalculateBackoff(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.rateLimiter.Allow(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		err := c.doSingleRequest(ctx, method, path, body, result)
		if err == nil {
			c.circuitBreaker.RecordSuccess()
			return nil
		}

		lastErr = err

		if !c.isRetryable(err) {
			c.circuitBreaker.RecordFailure()
			return err
		}

		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.rateLimiter.RecordRateLimitHit()
		}
	}

	c.circuitBreaker.RecordFailure()
	return fmt.Errorf("request failed after %d retries: %w", c.config.RetryConfig.MaxRetries, lastErr)
}

// doSingleRequest performs a single HTTP request.
func (c *Client) doSingleRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	fullURL := c.config.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	if c.config.Debug {
		c.logger.Debug("sms api request", "method", method, "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 60 * time.Second
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if seconds, err := strconv.Atoi(ra); err == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return &RateLimitError{
			RetryAfter: retryAfter,
			Message:    "rate limit exceeded",
		}
	}

	if resp.StatusCode >= 400 {
		var apiErr APIErrorDTO
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return &apiErr
		}
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return shared.WrapError("sms", "Parse", shared.ErrInvalidFormat, "unmarshal response", err)
		}
	}

	return nil
}

// isRetryable checks whether an error is worth retrying.
func (c *Client) isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}

	var apiErr *APIErrorDTO
	if errors.As(err, &apiErr) {
		return apiErr.Code == "SERVER_ERROR" || apiErr.Code == "TEMPORARILY_UNAVAILABLE"
	}

	errStr := err.Error()
	for _, marker := range []string{"timeout", "connection refused", "temporary", "reset", "EOF"} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH AND STATUS
// ══════════════════════════════════════════════════════════════════════════════

// IsHealthy checks whether the SMS API is reachable.
func (c *Client) IsHealthy(ctx context.Context) bool {
	var response APIResponse[map[string]interface{}]
	err := c.doSingleRequest(ctx, http.MethodGet, "/health", nil, &response)
	return err == nil && response.Success
}

// ClientStatus is a snapshot of the client's protective machinery.
type ClientStatus struct {
	RateLimiter    RateLimiterStatus
	CircuitBreaker CircuitBreakerStatus
	IsHealthy      bool
}

// Status returns the current status of the client.
func (c *Client) Status(ctx context.Context) ClientStatus {
	return ClientStatus{
		RateLimiter:    c.rateLimiter.Status(),
		CircuitBreaker: c.circuitBreaker.Status(),
		IsHealthy:      c.IsHealthy(ctx),
	}
}

// Reset resets the rate limiter and circuit breaker.
func (c *Client) Reset() {
	c.rateLimiter.Reset()
	c.circuitBreaker.Reset()
}
