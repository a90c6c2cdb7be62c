package types

// OverlayState represents which view the model overlay is showing
type OverlayState int

const (
	StateLocked         OverlayState = iota // the session already has a response, switching is not allowed
	StateRoot                               // recommended models plus the group entry
	StateSecondaryGroup                     // back entry plus every other model
)

func (s OverlayState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateRoot:
		return "root"
	case StateSecondaryGroup:
		return "secondary-group"
	default:
		return "unknown"
	}
}

// FetchState tracks the one-off request for the available models
type FetchState int

const (
	FetchLoading FetchState = iota
	FetchReady
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchLoading:
		return "loading"
	case FetchReady:
		return "ready"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}
