// Package httputil fetches remote screen documents.
//
// [Fetch] downloads a document over HTTP(S) with a size limit and retries
// transient failures (network errors, 5xx and 429 responses) through
// [Retry], which backs off exponentially between attempts:
//
//	data, err := httputil.Fetch(ctx, "https://example.com/screen.json")
//	if errors.Is(err, errors.ErrCodeNetwork) {
//	    // the server could not be reached
//	}
//
// Only http and https URLs are accepted.
package httputil
