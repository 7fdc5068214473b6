package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/batch"
	adapterlogger "github.com/Khushi-Roy-123/MOSIP/internal/adapters/logger"
	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/recognizer"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/validate"
	"github.com/Khushi-Roy-123/MOSIP/pkg/prereg"
	"github.com/Khushi-Roy-123/MOSIP/pkg/verification"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 20 * 1024 * 1024 // 20MB, document scans included
	DefaultConcurrency    = 0                // 0 means use fasthttp's default
)

var (
	verifier       *verification.Verifier
	batchProcessor *batch.Processor
	gemini         *recognizer.Gemini
	preregClient   *prereg.Client
	logger         l.Logger
)

// VerifyRequest is a claim/extraction pair to cross-verify.
type VerifyRequest struct {
	Claim      domain.ClaimRecord      `json:"claim"`
	Extraction domain.ExtractionRecord `json:"extraction"`
}

// VerifiedField is one comparison result enriched with the presentation
// policies: the confidence tier of the extracted value and any validation
// advisory attached to it.
type VerifiedField struct {
	domain.FieldComparisonResult
	ConfidenceTier  domain.ConfidenceTier `json:"confidenceTier"`
	ValidationError string                `json:"validationError,omitempty"`
}

// VerifyResponse is the ordered verification report.
type VerifyResponse struct {
	Results []VerifiedField `json:"results"`
}

// BatchVerifyRequest carries many claim/extraction pairs.
type BatchVerifyRequest struct {
	Jobs []VerifyRequest `json:"jobs"`
}

// BatchVerifyResponse returns one report per job, in request order.
type BatchVerifyResponse struct {
	Reports []VerifyResponse `json:"reports"`
}

// ScoreRequest asks for the raw similarity between two values.
type ScoreRequest struct {
	Claimed   string `json:"claimed"`
	Extracted string `json:"extracted"`
}

// ScoreResponse carries the 0-100 similarity score.
type ScoreResponse struct {
	Score int `json:"score"`
}

// ValidateRequest asks for the structural validation of a single field value.
type ValidateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ValidateResponse reports the advisory, if any.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ExtractRequest carries base64-encoded document images or PDFs.
type ExtractRequest struct {
	Documents []struct {
		MIMEType string `json:"mimeType"`
		Data     []byte `json:"data"`
	} `json:"documents"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = default)")
	workers := flag.Int("batch-workers", 0, "Batch verification workers (0 = one per CPU)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	geminiModel := flag.String("gemini-model", recognizer.DefaultModel, "Gemini model for document recognition")
	flag.Parse()

	// .env is optional; the recognizer is simply disabled without a key.
	_ = godotenv.Load()

	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting verification HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	initComponents(*warmUp, *workers, *geminiModel)

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// createLogger builds the shared logger, writing to the given file or stdout.
func createLogger(logFile string) (l.Logger, error) {
	output := os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output = f
	}

	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  logFile != "",
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

// initComponents wires the verifier, the batch processor, the recognizer and
// the simulated pre-registration client.
func initComponents(warmUp bool, workers int, geminiModel string) {
	opts := []verification.Option{
		verification.WithLogger(logger),
		verification.WithFastNormalizer(),
	}
	if warmUp {
		opts = append(opts, verification.WithWarmUp(true))
	}

	var err error
	verifier, err = verification.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize verifier", "error", err)
		os.Exit(1)
	}

	portsLogger := adapterlogger.FromExisting(logger)
	batchProcessor = batch.NewProcessor(verifier, portsLogger, workers)

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err = recognizer.NewGemini(portsLogger, apiKey, recognizer.WithModel(geminiModel))
		if err != nil {
			logger.Error("Failed to initialize recognizer", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, /extract disabled")
	}

	preregClient, err = prereg.NewClient(prereg.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to initialize pre-registration client", "error", err)
		os.Exit(1)
	}

	logger.Info("Verification components initialized",
		"warm_up", warmUp,
		"recognizer_enabled", gemini != nil,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "VerificationServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/score":
		handleScore(ctx)
	case "/verify":
		handleVerify(ctx)
	case "/verify/batch":
		handleBatchVerify(ctx)
	case "/validate":
		handleValidate(ctx)
	case "/extract":
		handleExtract(ctx)
	case "/submit":
		handleSubmit(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status":             "ok",
		"recognizer_enabled": gemini != nil,
		"time":               time.Now().Format(time.RFC3339),
	})
}

// handleScore computes the raw similarity between two values.
func handleScore(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ScoreRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, ScoreResponse{Score: verifier.Similarity(req.Claimed, req.Extracted)})
}

// handleVerify runs a single claim/extraction comparison.
func handleVerify(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req VerifyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, buildReport(req))
}

// handleBatchVerify runs many comparisons through the worker pool.
func handleBatchVerify(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BatchVerifyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Jobs) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "At least one job is required")
		return
	}

	jobs := make([]batch.Job, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		jobs = append(jobs, batch.NewJob(j.Claim, j.Extraction))
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := batchProcessor.Process(c, jobs)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSONError(ctx, "Batch verification failed: "+err.Error())
		return
	}

	resp := BatchVerifyResponse{Reports: make([]VerifyResponse, 0, len(results))}
	for i, r := range results {
		resp.Reports = append(resp.Reports, enrich(req.Jobs[i].Extraction, r.Results))
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, resp)
}

// handleValidate applies the structural field rule to a single value.
func handleValidate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ValidateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	resp := ValidateResponse{Valid: true}
	if err := validate.ByName(req.Field, req.Value); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, resp)
}

// handleExtract submits documents to the recognition backend.
func handleExtract(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}
	if gemini == nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSONError(ctx, "Recognition backend not configured")
		return
	}

	var req ExtractRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Documents) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "At least one document is required")
		return
	}

	docs := make([]domain.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, recognizer.NewDocument(d.MIMEType, d.Data))
	}

	c, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	result, err := gemini.Recognize(c, docs)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		writeJSONError(ctx, "Recognition failed: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, result)
}

// handleSubmit maps an extraction to the MOSIP identity schema and runs the
// simulated pre-registration submission.
func handleSubmit(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var result domain.RecognitionResult
	if err := json.Unmarshal(ctx.PostBody(), &result); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, err := preregClient.Submit(c, prereg.MapIdentity(&result))
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSONError(ctx, "Submission failed: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, receipt)
}

// buildReport runs the comparison and attaches the presentation policies.
func buildReport(req VerifyRequest) VerifyResponse {
	return enrich(req.Extraction, verifier.Compare(req.Claim, req.Extraction))
}

// enrich decorates comparison results with confidence tiers and validation
// advisories for the extracted values.
func enrich(extraction domain.ExtractionRecord, results []domain.FieldComparisonResult) VerifyResponse {
	resp := VerifyResponse{Results: make([]VerifiedField, 0, len(results))}
	for _, r := range results {
		vf := VerifiedField{
			FieldComparisonResult: r,
			ConfidenceTier:        domain.TierFor(r.Confidence),
		}
		if err := validate.Field(r.FieldKey, extraction.Lookup(r.FieldKey).Value); err != nil {
			vf.ValidationError = err.Error()
		}
		resp.Results = append(resp.Results, vf)
	}
	return resp
}

// writeJSONResponse marshals v into the response body.
func writeJSONResponse(ctx *fasthttp.RequestCtx, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Failed to encode response")
		return
	}
	ctx.SetBody(body)
}

// writeJSONError writes an ErrorResponse with the given message.
func writeJSONError(ctx *fasthttp.RequestCtx, msg string) {
	body, _ := json.Marshal(ErrorResponse{Error: msg})
	ctx.SetBody(body)
}
