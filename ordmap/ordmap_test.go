package ordmap_test

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/GerHobbelt/xsg-go/ordmap"
)

func intCmp() Comparator[int] { return OrderedComparator[int]() }

func TestInsertFindDelete(t *testing.T) {
	Convey("Given an empty int->string map", t, func() {
		m := New[int, string](intCmp())

		Convey("It starts empty", func() {
			So(m.Len(), ShouldEqual, 0)
			So(m.Height(), ShouldEqual, 0)
			So(m.Contains(1), ShouldBeFalse)
		})

		Convey("Inserting a new key grows the map", func() {
			_, inserted, err := m.Insert(1, "one")

			So(err, ShouldBeNil)
			So(inserted, ShouldBeTrue)
			So(m.Len(), ShouldEqual, 1)

			v, ok := m.Get(1)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "one")
		})

		Convey("Inserting an existing key leaves it unchanged", func() {
			_, _, _ = m.Insert(1, "one")

			prev, inserted, err := m.Insert(1, "uno")

			So(err, ShouldBeNil)
			So(inserted, ShouldBeFalse)
			So(prev, ShouldEqual, "one")

			v, _ := m.Get(1)
			So(v, ShouldEqual, "one")
		})

		Convey("InsertOrAssign overwrites an existing key", func() {
			_, _, _ = m.Insert(1, "one")

			inserted, err := m.InsertOrAssign(1, "uno")

			So(err, ShouldBeNil)
			So(inserted, ShouldBeFalse)

			v, _ := m.Get(1)
			So(v, ShouldEqual, "uno")
		})

		Convey("Deleting a present key removes it", func() {
			_, _, _ = m.Insert(1, "one")

			deleted, err := m.Delete(1)

			So(err, ShouldBeNil)
			So(deleted, ShouldBeTrue)
			So(m.Len(), ShouldEqual, 0)
			So(m.Contains(1), ShouldBeFalse)
		})

		Convey("Deleting an absent key is a no-op", func() {
			deleted, err := m.Delete(42)

			So(err, ShouldBeNil)
			So(deleted, ShouldBeFalse)
		})
	})
}

func TestOrderedIteration(t *testing.T) {
	Convey("Given a map with keys inserted out of order", t, func() {
		m := New[int, int](intCmp())

		keys := []int{50, 10, 90, 30, 70, 20, 60, 40, 80, 5}
		for _, k := range keys {
			_, _, _ = m.Insert(k, k*k)
		}

		Convey("First/Next visits every key in ascending order", func() {
			var got []int
			for c := m.First(); c.Valid(); c = c.Next() {
				got = append(got, c.Key())
			}

			So(got, ShouldResemble, []int{5, 10, 20, 30, 40, 50, 60, 70, 80, 90})
		})

		Convey("Last/Prev visits every key in descending order", func() {
			var got []int
			for c := m.Last(); c.Valid(); c = c.Prev() {
				got = append(got, c.Key())
			}

			So(got, ShouldResemble, []int{90, 80, 70, 60, 50, 40, 30, 20, 10, 5})
		})

		Convey("LowerBound/UpperBound bracket a present key", func() {
			lb := m.LowerBound(30)
			So(lb.Valid(), ShouldBeTrue)
			So(lb.Key(), ShouldEqual, 30)

			ub := m.UpperBound(30)
			So(ub.Valid(), ShouldBeTrue)
			So(ub.Key(), ShouldEqual, 40)
		})

		Convey("LowerBound/UpperBound bracket an absent key identically", func() {
			lb := m.LowerBound(35)
			ub := m.UpperBound(35)

			So(lb.Valid(), ShouldBeTrue)
			So(ub.Valid(), ShouldBeTrue)
			So(lb.Key(), ShouldEqual, ub.Key())
			So(lb.Key(), ShouldEqual, 40)
		})

		Convey("UpperBound past the maximum is invalid", func() {
			ub := m.UpperBound(90)
			So(ub.Valid(), ShouldBeFalse)
		})

		Convey("EqualRange on a present key spans exactly that entry", func() {
			first, last := m.EqualRange(60)

			So(first.Valid(), ShouldBeTrue)
			So(first.Key(), ShouldEqual, 60)

			n := 0
			for c := first; c.Valid() && c.Key() != last.Key(); c = c.Next() {
				n++

				if n > len(keys) {
					break
				}
			}

			So(n, ShouldEqual, 1)
		})

		Convey("DeleteRange removes a contiguous span", func() {
			first := m.LowerBound(30)
			last := m.LowerBound(70)

			n, err := m.DeleteRange(first, last)

			So(err, ShouldBeNil)
			So(n, ShouldEqual, 4)
			So(m.Len(), ShouldEqual, len(keys)-4)

			for _, k := range []int{30, 40, 50, 60} {
				So(m.Contains(k), ShouldBeFalse)
			}

			for _, k := range []int{5, 10, 20, 70, 80, 90} {
				So(m.Contains(k), ShouldBeTrue)
			}
		})
	})
}

func TestDeleteCursorAdvancesToSuccessor(t *testing.T) {
	Convey("Given a small map", t, func() {
		m := New[int, int](intCmp())
		for _, k := range []int{1, 2, 3, 4, 5} {
			_, _, _ = m.Insert(k, k)
		}

		Convey("DeleteCursor on an interior entry resumes at its successor", func() {
			c, ok := m.Find(3)
			So(ok, ShouldBeTrue)

			next, err := m.DeleteCursor(c)

			So(err, ShouldBeNil)
			So(next.Valid(), ShouldBeTrue)
			So(next.Key(), ShouldEqual, 4)
			So(m.Contains(3), ShouldBeFalse)
			So(m.Len(), ShouldEqual, 4)
		})
	})
}

func TestScapegoatRebalanceUnderStress(t *testing.T) {
	Convey("Given many keys inserted in increasing order", t, func() {
		const n = 5000

		m := New[int, int](intCmp())
		for i := 0; i < n; i++ {
			_, _, _ = m.Insert(i, i)
		}

		Convey("Weight-balance rebuilding keeps the tree shallow", func() {
			So(m.Len(), ShouldEqual, n)

			// An unbalanced BST fed strictly increasing keys degenerates
			// to a single chain of height n-1; scapegoat rebuilding must
			// keep this within a small constant factor of log2(n).
			So(m.Height(), ShouldBeLessThan, 4*20)
		})

		Convey("Every key is still reachable in order after rebuilding", func() {
			prev := -1
			count := 0

			for c := m.First(); c.Valid(); c = c.Next() {
				So(c.Key(), ShouldBeGreaterThan, prev)
				prev = c.Key()
				count++
			}

			So(count, ShouldEqual, n)
		})

		Convey("Deleting every other key in a random order preserves order", func() {
			r := rand.New(rand.NewSource(1))

			toDelete := make([]int, 0, n/2)
			for i := 0; i < n; i += 2 {
				toDelete = append(toDelete, i)
			}

			r.Shuffle(len(toDelete), func(i, j int) {
				toDelete[i], toDelete[j] = toDelete[j], toDelete[i]
			})

			for _, k := range toDelete {
				deleted, err := m.Delete(k)
				So(err, ShouldBeNil)
				So(deleted, ShouldBeTrue)
			}

			So(m.Len(), ShouldEqual, n-len(toDelete))

			prev := -1
			for c := m.First(); c.Valid(); c = c.Next() {
				So(c.Key()%2, ShouldEqual, 1)
				So(c.Key(), ShouldBeGreaterThan, prev)
				prev = c.Key()
			}
		})
	})
}

func TestComparatorPanicIsRecovered(t *testing.T) {
	Convey("Given a comparator that panics on a sentinel key", t, func() {
		boom := errors.New("boom")

		cmp := Comparator[int](func(a, b int) int {
			if a == 99 || b == 99 {
				panic(boom)
			}

			if a < b {
				return -1
			} else if a > b {
				return 1
			}

			return 0
		})

		m := New[int, int](cmp)
		_, _, _ = m.Insert(1, 1)

		Convey("Insert recovers the panic into an error", func() {
			_, _, err := m.Insert(99, 99)

			So(err, ShouldNotBeNil)
			So(m.Len(), ShouldEqual, 1)
		})

		Convey("Delete recovers the panic into an error", func() {
			_, err := m.Delete(99)

			So(err, ShouldNotBeNil)
		})
	})
}

func TestAssign(t *testing.T) {
	Convey("Given a populated source map and a differently populated destination", t, func() {
		src := New[int, int](intCmp())
		for _, k := range []int{1, 2, 3} {
			_, _, _ = src.Insert(k, k*100)
		}

		dst := New[int, int](intCmp())
		_, _, _ = dst.Insert(99, -1)

		Convey("Assign replaces the destination's contents with a copy", func() {
			err := dst.Assign(src)

			So(err, ShouldBeNil)
			So(dst.Len(), ShouldEqual, 3)
			So(dst.Contains(99), ShouldBeFalse)

			for _, k := range []int{1, 2, 3} {
				v, ok := dst.Get(k)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, k*100)
			}
		})

		Convey("Assigning a map to itself is a no-op, not a wipe", func() {
			err := src.Assign(src)

			So(err, ShouldBeNil)
			So(src.Len(), ShouldEqual, 3)

			for _, k := range []int{1, 2, 3} {
				So(src.Contains(k), ShouldBeTrue)
			}
		})
	})
}

func TestClear(t *testing.T) {
	Convey("Given a populated map", t, func() {
		m := New[int, int](intCmp())
		for i := 0; i < 100; i++ {
			_, _, _ = m.Insert(i, i)
		}

		Convey("Clear empties it", func() {
			m.Clear()

			So(m.Len(), ShouldEqual, 0)
			So(m.Contains(50), ShouldBeFalse)
			So(m.First().Valid(), ShouldBeFalse)
		})
	})
}
