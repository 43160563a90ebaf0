package constants

import "time"

const (
	CacheKeyLoginFailures = "library:login:failures:%s" // %s -> normalized email
)

const (
	CacheExpireLoginFailures = 15 * time.Minute
)
