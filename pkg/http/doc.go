// Package http provides an HTTP client that can also invoke Lambda
// functions fronted by API Gateway proxy integrations.
//
// Lambda URLs have the form:
//
//	lambda://<function-name>/<path>?<query-params>
//
// For example:
//
//	lambda://numberfacts/
//	lambda://numberfacts-primes/primes?max=1000
//
// A lambda:// request is converted to an API Gateway REST proxy event,
// invoked synchronously, and the proxy response is converted back to an
// *http.Response. Every other scheme goes through the wrapped
// *http.Client unchanged.
package http
