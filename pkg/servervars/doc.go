// Package servervars builds the request-metadata mapping a CGI-style
// application expects from an *http.Request.
//
// Header names become HTTP_<NAME> with dashes replaced by underscores:
//
//	vars := servervars.FromRequest(r)
//	vars["REQUEST_METHOD"]         // "GET"
//	vars["HTTP_X_FORWARDED_PROTO"] // "https"
//	vars["REQUEST_TIME"]           // int64 unix seconds
//	vars["argv"]                   // []string, structured
//
// Values are scalars except argv, which carries the raw query arguments the
// way CGI runtimes expose them.
package servervars
