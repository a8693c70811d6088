// Package constants holds names shared by configuration and providers.
package constants

// Delivery providers for one-time codes.
const (
	DeliveryProviderLog      = "log"
	DeliveryProviderPubSub   = "pubsub"
	DeliveryProviderFirebase = "firebase"
)

// Cache drivers.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// User store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Cache key namespaces.
const (
	CaptchaKeyPrefix      = "captcha:"
	AccessTokenKeyPrefix  = "token:"
	RefreshTokenKeyPrefix = "refresh:"
	ConsumedKeyPrefix     = "refresh-used:"
)
