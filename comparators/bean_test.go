package comparators_test

import (
	"sync"
	"testing"

	"github.com/astrapi69/jobj-compare/comparators"
	"github.com/stretchr/testify/assert"
)

//nolint:staticcheck // Bean is deprecated but still supported.
func TestBean(t *testing.T) {
	t.Parallel()

	al := Person{Name: "al", Age: 40}
	bert := Person{Name: "bert", Age: 20}

	bean := comparators.NewBean[Person]("name")
	assert.Equal(t, -1, bean.Compare(al, bert))

	bean.SetProperty("age")
	assert.Equal(t, "age", bean.Property().GetOrElse(""))
	assert.Equal(t, 1, bean.Compare(al, bert))

	result, err := bean.TryCompare(al, bert)
	assert.NoError(t, err)
	assert.Equal(t, 1, result)

	snapshot := bean.Snapshot()
	bean.SetProperty("")

	assert.True(t, bean.Property().Empty())
	assert.True(t, snapshot.Equals(comparators.ByProperty[Person]("age")))
	assert.Equal(t, 1, snapshot.Compare(al, bert))
}

//nolint:staticcheck // Bean is deprecated but still supported.
func TestBean_ConcurrentSetProperty(t *testing.T) {
	t.Parallel()

	al := Person{Name: "al", Age: 40}
	bert := Person{Name: "bert", Age: 20}
	bean := comparators.NewBean[Person]("name")

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			if i%2 == 0 {
				bean.SetProperty("age")
			} else {
				bean.SetProperty("name")
			}
		}()

		go func() {
			defer wg.Done()

			// Either name may be in effect, but never a mix of both.
			result := bean.Compare(al, bert)
			assert.Contains(t, []int{-1, 1}, result)
		}()
	}

	wg.Wait()
}
