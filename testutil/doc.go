// Package testutil provides test doubles for code built on restkit.
//
// Transport is a scripted http.RoundTripper: queue responses and errors,
// then hand it to a client via WithHTTPClient. Tests assert on the recorded
// requests instead of running a server.
//
//	tr := testutil.NewTransport().
//	    RespondJSON(200, map[string]any{"id": 7}).
//	    Respond(404, `{"message":"gone"}`)
//
//	c, _ := client.New(cfg, client.WithHTTPClient(&http.Client{Transport: tr}))
package testutil
