package config

import "os"

type Config struct {
	Port                    string
	ClientURL               string
	FirebaseCredentialsPath string

	// Media service credentials. The defaults match a local livekit-server
	// started in dev mode and are not suitable for anything else.
	LiveKitAPIKey    string
	LiveKitAPISecret string
	LiveKitURL       string

	GeminiAPIKey        string
	KafkaPropertiesPath string
	KMSCryptoKey        string
}

func Load() Config {
	return Config{
		Port:                    os.Getenv("PORT"),
		ClientURL:               os.Getenv("CLIENT_URL"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		LiveKitAPIKey:           getenv("LIVEKIT_API_KEY", "devkey"),
		LiveKitAPISecret:        getenv("LIVEKIT_API_SECRET", "secret"),
		LiveKitURL:              getenv("LIVEKIT_URL", "ws://localhost:7880"),
		GeminiAPIKey:            os.Getenv("GEMINI_API_KEY"),
		KafkaPropertiesPath:     os.Getenv("CLIENT_PROPERTIES_PATH"),
		KMSCryptoKey:            os.Getenv("KMS_CRYPTO_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
