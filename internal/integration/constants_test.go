package integration_test

const (
	TestUserId      = 7
	TestOtherUserId = 8
	TestAdminId     = 1

	TestUserMail      = "buyer@example.com"
	TestAccountNumber = "NL91ABNA0417164300"

	// checkouts seeded by testdata/checkouts_up.sql
	TestCheckoutId      = 1
	TestCheckoutTotal   = "1000.00"
	TestSmallCheckoutId = 2
	TestSmallTotal      = "250.00"
	TestOtherCheckoutId = 3

	// product left in the cart that is not part of any checkout
	TestUnrelatedProductId = 13
)
