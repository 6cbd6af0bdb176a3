package version

// Version is stamped at build time with -ldflags "-X singletuple/internal/shared/version.Version=...".
var Version = "dev"

// InformationURI is the project home reported in SARIF output.
const InformationURI = "https://github.com/singletuple/singletuple"
