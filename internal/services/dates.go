package services

// dayWindow expands an ISO calendar date into the whole-day UTC window
// [00:00:00.000, 23:59:59.999]. This fixed window is the only time
// bucketing in the system; no timezone parameter exists.
func dayWindow(isoDate string) (start, end string) {
	return isoDate + "T00:00:00.000Z", isoDate + "T23:59:59.999Z"
}
