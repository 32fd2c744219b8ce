package domain

// AppType distinguishes the headquarters app from the store app
type AppType string

const (
	AppHQ    AppType = "HQ"
	AppStore AppType = "STORE"
)

// PlatformType identifies the device platform a token belongs to
type PlatformType string

const (
	PlatformAndroid PlatformType = "ANDROID"
	PlatformIOS     PlatformType = "IOS"
	PlatformWeb     PlatformType = "WEB"
)
