//go:build component
// +build component

package component

func (s *ComponentTestSuite) TestCreateUser() {
	_, when, then := s.gherkin()

	when().
		aCreateUserRequestIsIssued()

	then().
		theCreateUserResponseContainsAValidUser().
		theUserCanBeFetchedByIDAndName().
		anEventForTheUserCreationWillEventuallyBeProduced()
}

func (s *ComponentTestSuite) TestUpdateUser() {
	given, when, then := s.gherkin()

	given().
		anExistingUser()

	when().
		theUserGetsUpdated()

	then().
		theUpdateResponseReflectsTheUpdateOperation().
		anEventWithoutIDNumberForTheUserUpdateWillEventuallyBeProduced()
}

func (s *ComponentTestSuite) TestListProductsOfASeller() {
	given, when, then := s.gherkin()

	given().
		anExistingUser().
		productsOfASellerAreCreated()

	when().
		theSellerProductsAreListedInPages()

	then().
		everyCreatedProductWasListedOnce()
}

func (s *ComponentTestSuite) TestNotFound() {
	_, _, then := s.gherkin()

	then().
		unknownRoutesAndUsersAreNotFound()
}
