package birdprotocol

// Classify interprets one decoded line from the daemon.
//
// Every input maps to exactly one ReplyKind. The first byte selects
// async ('+') and continuation (' ') lines; otherwise the line is coded
// when it is longer than CodeWidth, starts with CodeWidth decimal digits
// and has FinalMarker or MoreMarker right after them. Anything else is
// malformed.
func Classify(line string) Reply {
	if line == "" {
		return Reply{Kind: KindMalformed, Text: line, Raw: line}
	}

	switch line[0] {
	case AsyncPrefix:
		return Reply{Kind: KindAsync, Text: line[1:], Raw: line}
	case ContinuationPrefix:
		return Reply{Kind: KindContinuation, Text: line[1:], Raw: line}
	}

	if code, ok := parseCode(line); ok {
		marker := line[CodeWidth]
		if marker == FinalMarker || marker == MoreMarker {
			return Reply{
				Kind:  KindCoded,
				Code:  code,
				Final: marker == FinalMarker,
				Text:  line[CodeWidth+1:],
				Raw:   line,
			}
		}
	}

	return Reply{Kind: KindMalformed, Text: line, Raw: line}
}

// parseCode reads the leading CodeWidth digits of a line that is long
// enough to also carry a marker.
func parseCode(line string) (int, bool) {
	if len(line) <= CodeWidth {
		return 0, false
	}
	code := 0
	for i := 0; i < CodeWidth; i++ {
		c := line[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		code = code*10 + int(c-'0')
	}
	return code, true
}
