package data

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Bot struct {
		Token string `json:"token"`
		Owner int64  `json:"owner"`
	} `json:"bot"`
	Seedphrase  string `json:"seed"`
	SessionFile string `json:"sessionFile"`
	Backend     struct {
		URL string `json:"url"`
	} `json:"backend"`
	Network struct {
		Proxy               string `json:"proxy"`
		ExplorerTransaction string `json:"explorerTransaction"`
		ExplorerAccount     string `json:"explorerAccount"`
	} `json:"network"`
}
