package multimap_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/GerHobbelt/xsg-go/multimap"
)

func intCmp() Comparator[int] { return OrderedComparator[int]() }

func TestInsertAndBuckets(t *testing.T) {
	Convey("Given an empty multimap", t, func() {
		m := New[int, string](intCmp())

		So(m.Len(), ShouldEqual, 0)
		So(m.KeyCount(), ShouldEqual, 0)

		Convey("Inserting distinct keys grows both key count and size", func() {
			So(m.Insert(1, "a"), ShouldBeNil)
			So(m.Insert(2, "b"), ShouldBeNil)

			So(m.Len(), ShouldEqual, 2)
			So(m.KeyCount(), ShouldEqual, 2)
		})

		Convey("Inserting a duplicate key grows size but not key count", func() {
			So(m.Insert(1, "a"), ShouldBeNil)
			So(m.Insert(1, "b"), ShouldBeNil)
			So(m.Insert(1, "c"), ShouldBeNil)

			So(m.Len(), ShouldEqual, 3)
			So(m.KeyCount(), ShouldEqual, 1)
			So(m.Count(1), ShouldEqual, 3)
			So(m.Values(1), ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("Count and Contains on an absent key", func() {
			So(m.Count(99), ShouldEqual, 0)
			So(m.Contains(99), ShouldBeFalse)
		})
	})
}

func TestMultimapOrderedIteration(t *testing.T) {
	Convey("Given a multimap with several duplicate keys", t, func() {
		m := New[int, string](intCmp())

		_ = m.Insert(2, "two-a")
		_ = m.Insert(1, "one-a")
		_ = m.Insert(2, "two-b")
		_ = m.Insert(3, "three-a")
		_ = m.Insert(1, "one-b")

		Convey("First/Next visits every value grouped by ascending key", func() {
			var got []string
			for c := m.First(); c.Valid(); c = c.Next() {
				got = append(got, c.Value())
			}

			So(got, ShouldResemble, []string{"one-a", "one-b", "two-a", "two-b", "three-a"})
		})

		Convey("Last/Prev visits every value in reverse", func() {
			var got []string
			for c := m.Last(); c.Valid(); c = c.Prev() {
				got = append(got, c.Value())
			}

			So(got, ShouldResemble, []string{"three-a", "two-b", "two-a", "one-b", "one-a"})
		})

		Convey("DeleteCursor on a non-final bucket entry stays on the same key", func() {
			c, ok := m.Find(2)
			So(ok, ShouldBeTrue)
			So(c.Value(), ShouldEqual, "two-a")

			next, err := m.DeleteCursor(c)

			So(err, ShouldBeNil)
			So(next.Valid(), ShouldBeTrue)
			So(next.Key(), ShouldEqual, 2)
			So(next.Value(), ShouldEqual, "two-b")
			So(m.Count(2), ShouldEqual, 1)
		})

		Convey("DeleteCursor on the sole entry for a key drops the node", func() {
			c, ok := m.Find(3)
			So(ok, ShouldBeTrue)

			next, err := m.DeleteCursor(c)

			So(err, ShouldBeNil)
			So(m.Contains(3), ShouldBeFalse)
			So(m.KeyCount(), ShouldEqual, 2)
			So(next.Valid(), ShouldBeFalse)
		})

		Convey("DeleteKey removes every value under a key", func() {
			removed, err := m.DeleteKey(1)

			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 2)
			So(m.Contains(1), ShouldBeFalse)
			So(m.Len(), ShouldEqual, 3)
		})

		Convey("DeleteRange removes a contiguous span across keys and buckets", func() {
			first, _ := m.Find(1)
			last := m.LowerBound(3)

			n, err := m.DeleteRange(first, last)

			So(err, ShouldBeNil)
			So(n, ShouldEqual, 4)
			So(m.Contains(1), ShouldBeFalse)
			So(m.Contains(2), ShouldBeFalse)
			So(m.Contains(3), ShouldBeTrue)
			So(m.Len(), ShouldEqual, 1)
		})
	})
}

func TestMultimapAssign(t *testing.T) {
	Convey("Given a populated source multimap and a differently populated destination", t, func() {
		src := New[int, string](intCmp())
		_ = src.Insert(1, "a")
		_ = src.Insert(1, "b")
		_ = src.Insert(2, "c")

		dst := New[int, string](intCmp())
		_ = dst.Insert(99, "stale")

		Convey("Assign replaces the destination's contents with a copy", func() {
			err := dst.Assign(src)

			So(err, ShouldBeNil)
			So(dst.Len(), ShouldEqual, 3)
			So(dst.Contains(99), ShouldBeFalse)
			So(dst.Values(1), ShouldResemble, []string{"a", "b"})
			So(dst.Values(2), ShouldResemble, []string{"c"})
		})

		Convey("Assigning a multimap to itself is a no-op, not a wipe", func() {
			err := src.Assign(src)

			So(err, ShouldBeNil)
			So(src.Len(), ShouldEqual, 3)
			So(src.Values(1), ShouldResemble, []string{"a", "b"})
		})
	})
}

func TestMultimapClear(t *testing.T) {
	Convey("Given a populated multimap", t, func() {
		m := New[int, int](intCmp())
		for i := 0; i < 50; i++ {
			_ = m.Insert(i%10, i)
		}

		Convey("Clear empties it", func() {
			m.Clear()

			So(m.Len(), ShouldEqual, 0)
			So(m.KeyCount(), ShouldEqual, 0)
			So(m.First().Valid(), ShouldBeFalse)
		})
	})
}
