package common

// AuthorizationHeaderName is the HTTP header (and lower-cased gRPC metadata
// key) carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the token inside the authorization header.
const BearerScheme = "Bearer "

// Reason codes carried in the "code" field of the JSON error envelope.
const (
	CodeValidation         = "ValidationError"
	CodeDuplicateAccount   = "DuplicateAccount"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeMissingToken       = "MissingToken"
	CodeInvalidToken       = "InvalidToken"
	CodeAuthorization      = "AuthorizationError"
	CodeNotFound           = "NotFound"
	CodeMethodNotAllowed   = "MethodNotAllowed"
	CodeInternal           = "InternalError"
)
