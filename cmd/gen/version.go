package gen

func Version() string {
	return "unknown"
}
