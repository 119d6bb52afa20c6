package tracing

// Span names.
const (
	SpanAnalyze  = "header.analyze"
	SpanParse    = "header.parse"
	SpanTokenize = "header.tokenize"
)

// Span attribute keys.
const (
	AttrDocument     = "header.document"
	AttrAnalysisID   = "header.analysis_id"
	AttrBufferBytes  = "header.buffer_bytes"
	AttrDirective    = "header.directive"
	AttrPairCount    = "header.pair_count"
	AttrSpanCount    = "header.span_count"
	AttrCacheHit     = "header.cache_hit"
	AttrErrorKind    = "error.kind"
	AttrErrorColumn  = "error.column"
	AttrErrorMessage = "error.message"
)
