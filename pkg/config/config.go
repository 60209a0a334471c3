package config

// config file
type (
	// Directory describes the upstream directory service used for
	// presenter and client authentication.
	Directory struct {
		Host            string // hostname, host:port or ldap(s):// URL
		BindDNFormat    string
		BaseDN          string
		PresenterFilter string
		ClientFilter    string
		NameAttr        string // attribute carrying the display name
		MailAttr        string // attribute carrying the email address
		Insecure        bool   // skip certificate verification for ldaps
		Timeout         int    // dial and request timeout, seconds
	}

	API struct {
		Cert        string
		Enabled     bool
		Internals   bool
		Key         string
		Listen      string
		SecretToken string
		TLS         bool
	}

	// User is a locally provisioned account. Accounts imported from the
	// directory carry no hashes; they are marked external instead.
	User struct {
		Name        string
		DisplayName string
		Mail        string
		PassSHA256  string
		PassBcrypt  string
		Disabled    bool
	}

	Tracing struct {
		Enabled      bool
		GRPCEndpoint string
		HTTPEndpoint string
	}

	Config struct {
		API                API
		Directory          Directory
		Debug              bool
		Syslog             bool
		StructuredLog      bool
		WatchConfig        bool
		Users              []User
		Tracing            Tracing
		ConfigFile         string
		AwsAccessKeyId     string
		AwsSecretAccessKey string
		AwsRegion          string
	}
)
