package fingerprint

import (
	"fmt"
	"sync"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/LiuYuuChen/tinyutil/hash"
)

func Test_DetectorObserve(t *testing.T) {
	convey.Convey("test change detection", t, func() {
		detector := New()

		sum, changed := detector.Observe("readme", "hello")
		convey.So(changed, convey.ShouldBeTrue)
		convey.So(sum, convey.ShouldEqual, hash.String("hello"))

		_, changed = detector.Observe("readme", "hello")
		convey.So(changed, convey.ShouldBeFalse)

		sum, changed = detector.Observe("readme", "hello!")
		convey.So(changed, convey.ShouldBeTrue)
		stored, ok := detector.Sum("readme")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(stored, convey.ShouldEqual, sum)

		convey.Convey("keys are tracked independently", func() {
			_, changed := detector.Observe("guide", "hello!")
			convey.So(changed, convey.ShouldBeTrue)
			convey.So(detector.Len(), convey.ShouldEqual, 2)
			convey.So(detector.Keys(), convey.ShouldResemble, []string{"guide", "readme"})
		})

		convey.Convey("forgotten keys count as new again", func() {
			detector.Forget("readme")
			_, ok := detector.Sum("readme")
			convey.So(ok, convey.ShouldBeFalse)

			_, changed := detector.Observe("readme", "hello!")
			convey.So(changed, convey.ShouldBeTrue)
		})

		convey.Convey("reset drops everything", func() {
			detector.Reset()
			convey.So(detector.Len(), convey.ShouldEqual, 0)
			convey.So(detector.Keys(), convey.ShouldBeEmpty)
		})
	})
}

func Test_DetectorConcurrent(t *testing.T) {
	convey.Convey("concurrent observers agree on a single first sighting", t, func() {
		detector := New()
		const workers = 8
		const keys = 50

		var mu sync.Mutex
		firsts := make(map[string]int, keys)

		wg := sync.WaitGroup{}
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < keys; k++ {
					key := fmt.Sprintf("Item_%d", k)
					if _, changed := detector.Observe(key, "same content"); changed {
						mu.Lock()
						firsts[key]++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		convey.So(detector.Len(), convey.ShouldEqual, keys)
		for k := 0; k < keys; k++ {
			convey.So(firsts[fmt.Sprintf("Item_%d", k)], convey.ShouldEqual, 1)
		}
	})
}
