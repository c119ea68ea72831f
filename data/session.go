package data

// Session is the client-held proof of a successfully authenticated wallet.
// It is only valid while the attached signer still reports the same address.
type Session struct {
	WalletAddress string
	Token         string
}

// StoredSession is the durable form of a Session, written to the session file
// so an authenticated wallet survives restarts.
type StoredSession struct {
	AuthToken     string `json:"auth_token"`
	WalletAddress string `json:"wallet_address"`
}
