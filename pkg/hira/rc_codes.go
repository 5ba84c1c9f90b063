package hira

// Result codes embedded in the JSON body header. The gateway and the
// service itself use different success codes.
const (
	RCSuccess        = "00"
	RCSuccessGateway = "200"
)

// IsSuccessCode reports whether an embedded result code means the page
// can be used.
func IsSuccessCode(code string) bool {
	return code == RCSuccess || code == RCSuccessGateway
}
