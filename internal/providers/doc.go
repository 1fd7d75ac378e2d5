// Package providers implements the Reviewer interface for the model backends
// srclens can consult.
//
// Supported providers: the Hugging Face Inference API (remote, needs an API
// key, tries a list of models in order) and Ollama (local, keyless).
//
// Each Review call is a single request per model with the client's timeout as
// the only bound; failures are returned as errors and never retried. HTTP
// clients are injected via a field so tests can redirect calls to httptest
// servers.
//
// Use [New] to obtain a Reviewer by provider name.
package providers
