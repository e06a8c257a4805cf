package coursecheck

import (
	"context"
	"testing"

	"coursewatch/lib/testutil"
	"coursewatch/services/coursecheck/db"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "coursecheck",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { result.DB.Close() })
	return NewStore(result.DB)
}

func testRecord(name, viewport string) db.CreateCourseRecordParams {
	return db.CreateCourseRecordParams{
		BaseURL:    testListing,
		CourseName: name,
		CtaLink:    testDetail,
		Price:      "₹10,000",
		PdpPrice:   "₹10,000",
		CtaStatus:  "Found (Enroll Now)",
		Viewport:   viewport,
	}
}

func TestSaveBatchDeduplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	batch := []db.CreateCourseRecordParams{
		testRecord("Foundation Batch", "desktop"),
		testRecord("Achiever Batch", "desktop"),
	}
	require.NoError(t, store.SaveBatch(ctx, batch))

	// Saving the same batch again must not grow the table.
	require.NoError(t, store.SaveBatch(ctx, batch))

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestSaveBatchViewportPartitioning(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// The same course seen on both viewports is two distinct records.
	require.NoError(t, store.SaveBatch(ctx, []db.CreateCourseRecordParams{
		testRecord("Foundation Batch", "desktop"),
	}))
	require.NoError(t, store.SaveBatch(ctx, []db.CreateCourseRecordParams{
		testRecord("Foundation Batch", "mobile"),
	}))

	counts, err := store.ViewportCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"desktop": 1, "mobile": 1}, counts)
}

func TestSaveBatchEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBatch(context.Background(), nil))
}

func TestSaveBatchDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []db.CreateCourseRecordParams{
		testRecord("Foundation Batch", "desktop"),
	}))
	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.NotZero(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())
	require.EqualValues(t, 0, rec.IsBroken)
	require.EqualValues(t, 0, rec.PriceMismatch)
}
