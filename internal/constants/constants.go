package constants

// for api
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	SessionIDKey            ContextKey = "session_id"
)

const SessionIDHeader = "X-Session-ID"

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader           = "X-Request-ID"
)

type StoreType string

const (
	StoreMemory   StoreType = "memory"
	StoreRedis    StoreType = "redis"
	StorePostgres StoreType = "postgres"
)
