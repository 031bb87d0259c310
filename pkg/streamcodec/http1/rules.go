package http1

// ContentAlwaysEmpty reports whether a response never carries a body
// regardless of its framing headers: true for any 1xx status, for 204, and
// for 304. The one exception is 101 Switching Protocols carrying an Upgrade
// header without a Sec-WebSocket-Accept header, which is allowed a body.
//
// headers must be the message's fully parsed header list. A MessageFactory
// building responses should not call this from NewMessageHead, since that
// callback runs before any header line has been read; instead retain
// statusCode and the *HeaderList passed to NewMessageHead and evaluate
// Message.IsContentAlwaysEmpty lazily, once READ_HEADER has populated it.
func ContentAlwaysEmpty(statusCode int, headers *HeaderList) bool {
	switch statusCode {
	case 204, 304:
		return true
	}

	if statusCode >= 100 && statusCode < 200 {
		if statusCode == 101 {
			if _, hasUpgrade := headers.Get("Upgrade"); hasUpgrade {
				if _, hasAccept := headers.Get("Sec-WebSocket-Accept"); !hasAccept {
					return false
				}
			}
		}
		return true
	}

	return false
}
