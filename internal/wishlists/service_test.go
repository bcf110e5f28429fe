package wishlists

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/wishlists-backend/pkg/db/models"
	pkgerrors "github.com/giftwell/wishlists-backend/pkg/errors"
)

func TestCreateAssignsFreshID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wishlist := &models.Wishlist{ID: 55, Name: "Birthday", UserID: 1}
	require.NoError(t, env.wishlists.Create(ctx, wishlist))
	assert.NotEqual(t, int64(55), wishlist.ID, "create must assign a fresh identity")
	assert.NotZero(t, wishlist.ID)
}

func TestUpdateRequiresAssignedID(t *testing.T) {
	env := newTestEnv(t)

	err := env.wishlists.Update(context.Background(), &models.Wishlist{Name: "Birthday", UserID: 1})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidState), "got %v", err)
	assert.Contains(t, err.Error(), "update called with empty ID field")
}

func TestDeleteCascadesToOwnedProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doomed := env.createWishlist(t, "Birthday", 1)
	env.createProduct(t, "toy", doomed.ID)
	env.createProduct(t, "book", doomed.ID)

	survivor := env.createWishlist(t, "Trip", 1)
	kept := env.createProduct(t, "tv", survivor.ID)

	removed, err := env.wishlists.Delete(ctx, doomed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	gone, err := env.wishlists.FindByID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orphans, err := env.products.FindAllByWishlistID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans, "no product may outlive its wishlist")

	leftover, err := env.products.FindAllByWishlistID(ctx, survivor.ID)
	require.NoError(t, err)
	require.Len(t, leftover, 1)
	assert.Equal(t, kept.ID, leftover[0].ID)
}

func TestDeleteUnsavedWishlistIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	removed, err := env.wishlists.Delete(context.Background(), &models.Wishlist{Name: "Birthday"})
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeleteVanishedWishlistIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wishlist := env.createWishlist(t, "Birthday", 1)

	first, err := env.wishlists.Delete(ctx, wishlist)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := env.wishlists.Delete(ctx, wishlist)
	require.NoError(t, err)
	assert.Zero(t, second, "repeating the delete is a zero-count no-op")
}

func TestReadAssemblesCompositeView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wishlist := env.createWishlist(t, "Birthday", 7)
	first := env.createProduct(t, "toy", wishlist.ID)
	second := env.createProduct(t, "book", wishlist.ID)

	view, err := env.wishlists.Read(ctx, wishlist.ID)
	require.NoError(t, err)

	assert.Equal(t, wishlist.ID, view["id"])
	assert.Equal(t, "Birthday", view["name"])
	assert.Equal(t, int64(7), view["user_id"])

	nested, ok := view["products"].([]map[string]any)
	require.True(t, ok, "products must nest as a list of mappings, got %T", view["products"])
	require.Len(t, nested, 2)
	assert.Equal(t, first.ID, nested[0]["id"])
	assert.Equal(t, "toy", nested[0]["name"])
	assert.Equal(t, second.ID, nested[1]["id"])
	assert.Equal(t, "DEFAULT", nested[1]["in_cart_status"])
}

func TestReadEmptyWishlistHasEmptyProductList(t *testing.T) {
	env := newTestEnv(t)

	wishlist := env.createWishlist(t, "Birthday", 1)
	view, err := env.wishlists.Read(context.Background(), wishlist.ID)
	require.NoError(t, err)

	nested, ok := view["products"].([]map[string]any)
	require.True(t, ok)
	assert.Empty(t, nested)
}

func TestReadMissingWishlist(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlists.Read(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound), "got %v", err)
	assert.Contains(t, err.Error(), "wishlist with id 12345 was not found")
}

func TestDeleteProductsCountsOnlyResolvedIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wishlist := env.createWishlist(t, "Birthday", 1)
	first := env.createProduct(t, "toy", wishlist.ID)
	second := env.createProduct(t, "book", wishlist.ID)

	other := env.createWishlist(t, "Trip", 1)
	foreign := env.createProduct(t, "tv", other.ID)

	removed, err := env.wishlists.DeleteProducts(ctx, wishlist.ID,
		[]int64{first.ID, 9999, foreign.ID, second.ID})
	require.NoError(t, err, "unresolved ids are skipped, not failures")
	assert.Equal(t, int64(2), removed)

	again, err := env.wishlists.DeleteProducts(ctx, wishlist.ID, []int64{first.ID, second.ID})
	require.NoError(t, err)
	assert.Zero(t, again, "repeating the bulk delete finds nothing to remove")

	untouched, err := env.products.FindAllByWishlistID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, untouched, 1, "foreign products stay with their wishlist")
}

func TestRenameProbesSuffixesOnCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createWishlist(t, "Gift", 1)
	env.createWishlist(t, "Gift 1", 1)
	trip := env.createWishlist(t, "Trip", 1)

	renamed, err := env.wishlists.Rename(ctx, trip.ID, "Gift")
	require.NoError(t, err)
	assert.Equal(t, "Gift 2", renamed.Name)

	stored, err := env.wishlists.FindByID(ctx, trip.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Gift 2", stored.Name)
}

func TestRenameToOwnNameIsStable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	gift := env.createWishlist(t, "Gift", 1)
	env.createWishlist(t, "Trip", 1)

	renamed, err := env.wishlists.Rename(ctx, gift.ID, "Gift")
	require.NoError(t, err)
	assert.Equal(t, "Gift", renamed.Name, "the wishlist's own name never collides with itself")
}

func TestRenameIgnoresOtherUsersNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createWishlist(t, "Gift", 2)
	trip := env.createWishlist(t, "Trip", 1)

	renamed, err := env.wishlists.Rename(ctx, trip.ID, "Gift")
	require.NoError(t, err)
	assert.Equal(t, "Gift", renamed.Name, "names only collide within one user's wishlists")
}

func TestRenameMissingWishlist(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlists.Rename(context.Background(), 12345, "Gift")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestRenameRejectsInvalidName(t *testing.T) {
	env := newTestEnv(t)

	wishlist := env.createWishlist(t, "Gift", 1)
	_, err := env.wishlists.Rename(context.Background(), wishlist.ID, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestFindAllByUserIDBatchesProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	birthday := env.createWishlist(t, "Birthday", 1)
	trip := env.createWishlist(t, "Trip", 1)
	env.createWishlist(t, "Foreign", 2)

	env.createProduct(t, "toy", birthday.ID)
	env.createProduct(t, "book", birthday.ID)
	tv := env.createProduct(t, "tv", trip.ID)

	views, err := env.wishlists.FindAllByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, birthday.ID, views[0]["id"])
	firstProducts, ok := views[0]["products"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, firstProducts, 2)

	assert.Equal(t, trip.ID, views[1]["id"])
	secondProducts, ok := views[1]["products"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, secondProducts, 1)
	assert.Equal(t, tv.ID, secondProducts[0]["id"])

	none, err := env.wishlists.FindAllByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindAllByUserIDTagsLogsWithUser(t *testing.T) {
	env, logs := newLoggedEnv(t)
	env.createWishlist(t, "Birthday", 42)
	logs.Reset()

	_, err := env.wishlists.FindAllByUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"user_id":42`)
}

func TestFindAllReturnsAscendingIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createWishlist(t, "Birthday", 1)
	second := env.createWishlist(t, "Trip", 2)

	rows, err := env.wishlists.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}
