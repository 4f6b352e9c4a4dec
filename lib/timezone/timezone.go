package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
}

// the catalogue publishes everything in JST, so date math
// (fiscal years, cache expiry stamps) is forced into Asia/Tokyo
// no matter where the process happens to run
func Now() time.Time {
	return time.Now().In(Location)
}
