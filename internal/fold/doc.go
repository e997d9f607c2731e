// Package fold composes per-key terms into a single comparison or hash
// body. It knows nothing about records or unions: callers hand it terms
// and get back statements.
package fold
