package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Store             string `usage:"storage backend: memory or sqlite"`
	Sqlite            string `usage:"sqlite database filename (store=sqlite)"`
	Resources         string `usage:"resource definitions: '<name>:<field>,<field>;...'"`
	Statics           string `usage:"statics directory (embedded if empty)"`
	EnableCompression bool   `usage:"gzip responses"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:   ":8080",
		Store:      "memory",
		Sqlite:     "shelf.db",
		Resources:  "dogs:name,weight",
		ShowBanner: true,
	}
}
