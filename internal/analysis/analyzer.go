package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/headline/internal/cachemanager"
	"github.com/zjrosen/headline/internal/directive"
	"github.com/zjrosen/headline/internal/log"
	"github.com/zjrosen/headline/internal/pubsub"
	"github.com/zjrosen/headline/internal/tracing"
)

// contentNamespace seeds the name-based UUIDs used as content cache keys.
var contentNamespace = uuid.MustParse("6f1d8c1e-5a4b-4c1f-9f0e-3a2b7c9d4e10")

type contentKey string

// Config configures an Analyzer.
type Config struct {
	Options directive.Options
	// TTL bounds how long results are kept. Zero uses
	// cachemanager.DefaultExpiration.
	TTL          time.Duration
	DisableCache bool
	// Tracer defaults to a no-op tracer.
	Tracer trace.Tracer
	// Broker defaults to a new broker owned by the Analyzer.
	Broker *pubsub.Broker[Analysis]
	// Now defaults to time.Now.
	Now func() time.Time
}

// Analyzer analyzes buffers and publishes the results. It is safe for
// concurrent use.
type Analyzer struct {
	opts    directive.Options
	ttl     time.Duration
	tracer  trace.Tracer
	broker  *pubsub.Broker[Analysis]
	now     func() time.Time
	last    cachemanager.CacheManager[DocumentKey, Analysis]
	results *cachemanager.ReadThroughCache[contentKey, result, request]
}

type request struct {
	buffer   string
	computed *bool
}

// New creates an Analyzer from cfg.
func New(cfg Config) *Analyzer {
	a := &Analyzer{
		opts:   cfg.Options,
		ttl:    cfg.TTL,
		tracer: cfg.Tracer,
		broker: cfg.Broker,
		now:    cfg.Now,
	}
	if a.ttl <= 0 {
		a.ttl = cachemanager.DefaultExpiration
	}
	if a.tracer == nil {
		a.tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if a.broker == nil {
		a.broker = pubsub.NewBroker[Analysis]()
	}
	if a.now == nil {
		a.now = time.Now
	}

	a.last = cachemanager.NewInMemoryCacheManager[DocumentKey, Analysis](
		"last-analysis", a.ttl, cachemanager.DefaultCleanupInterval)
	a.results = cachemanager.NewReadThroughCache[contentKey, result, request](
		cachemanager.NewInMemoryCacheManager[contentKey, result](
			"analysis-results", a.ttl, cachemanager.DefaultCleanupInterval),
		a.compute,
		cfg.DisableCache,
	)
	return a
}

// Broker returns the broker analyses are published on.
func (a *Analyzer) Broker() *pubsub.Broker[Analysis] {
	return a.broker
}

// Options returns the limits the analyzer parses with.
func (a *Analyzer) Options() directive.Options {
	return a.opts
}

// Analyze parses and tokenizes buffer, records it as doc's latest analysis
// and publishes it: AnalyzedEvent for a directive, InvalidEvent for a
// rejected header, ClearedEvent when there is no header line.
func (a *Analyzer) Analyze(ctx context.Context, doc DocumentKey, buffer string) Analysis {
	ctx, span := a.tracer.Start(ctx, tracing.SpanAnalyze, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	computed := false
	key := contentKey(uuid.NewSHA1(contentNamespace, []byte(buffer)).String())
	res, _ := a.results.GetWithRefresh(ctx, key, request{buffer: buffer, computed: &computed}, a.ttl)

	an := res.analysis(doc, buffer, a.now(), !computed)
	a.last.Set(ctx, doc, an.clone(), a.ttl)

	span.SetAttributes(
		attribute.String(tracing.AttrDocument, string(doc)),
		attribute.String(tracing.AttrAnalysisID, an.ID.String()),
		attribute.Int(tracing.AttrBufferBytes, len(buffer)),
		attribute.Bool(tracing.AttrCacheHit, an.CacheHit),
	)

	if an.Err != nil {
		recordError(span, an.Err)
		log.Debug(log.CatParse, "Header rejected", "document", doc, "error", an.Err, "cache_hit", an.CacheHit)
		a.broker.Publish(pubsub.InvalidEvent, an.clone())
		return an
	}

	span.SetStatus(codes.Ok, "")
	if an.Parsed.IsEmpty() {
		log.Debug(log.CatParse, "No header line", "document", doc)
		a.broker.Publish(pubsub.ClearedEvent, an.clone())
		return an
	}

	log.Debug(log.CatParse, "Header analyzed",
		"document", doc, "directive", an.Parsed.Directive.Name, "spans", len(an.Spans), "cache_hit", an.CacheHit)
	a.broker.Publish(pubsub.AnalyzedEvent, an.clone())
	return an
}

// Last returns the most recent analysis recorded for doc.
func (a *Analyzer) Last(ctx context.Context, doc DocumentKey) (Analysis, bool) {
	an, ok := a.last.Get(ctx, doc)
	if !ok {
		return Analysis{}, false
	}
	return an.clone(), true
}

// Forget drops doc's latest analysis and publishes ClearedEvent.
func (a *Analyzer) Forget(ctx context.Context, doc DocumentKey) error {
	if err := a.last.Delete(ctx, doc); err != nil {
		return err
	}
	a.broker.Publish(pubsub.ClearedEvent, Analysis{Document: doc, At: a.now()})
	return nil
}

// Documents returns the number of documents with a recorded analysis.
func (a *Analyzer) Documents() int {
	return a.last.Count()
}

// Close shuts down the broker.
func (a *Analyzer) Close() {
	a.broker.Close()
}

// compute runs the parser and lexer. They never share state, so a rejected
// header still yields spans.
func (a *Analyzer) compute(ctx context.Context, req request) (result, error) {
	*req.computed = true

	_, parseSpan := a.tracer.Start(ctx, tracing.SpanParse)
	parsed, err := a.opts.Parse(req.buffer)
	if err != nil {
		recordError(parseSpan, err)
	} else {
		if !parsed.IsEmpty() {
			parseSpan.SetAttributes(
				attribute.String(tracing.AttrDirective, parsed.Directive.Name),
				attribute.Int(tracing.AttrPairCount, len(parsed.Directive.Pairs)),
			)
		}
		parseSpan.SetStatus(codes.Ok, "")
	}
	parseSpan.End()

	_, tokenSpan := a.tracer.Start(ctx, tracing.SpanTokenize)
	spans := a.opts.Tokenize(req.buffer)
	tokenSpan.SetAttributes(attribute.Int(tracing.AttrSpanCount, len(spans)))
	tokenSpan.SetStatus(codes.Ok, "")
	tokenSpan.End()

	return result{parsed: parsed, err: err, spans: spans}, nil
}

func recordError(span trace.Span, err error) {
	var perr *directive.ParseError
	if errors.As(err, &perr) {
		span.SetAttributes(
			attribute.String(tracing.AttrErrorKind, perr.Kind.String()),
			attribute.Int(tracing.AttrErrorColumn, perr.Column),
		)
	}
	span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
