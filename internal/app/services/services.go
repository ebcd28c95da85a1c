// Package services holds the portal's business logic.
//
// Services defined in this package:
//   - AuthService: sign-in, sign-up and sign-out through the identity provider
//   - VerificationService: school affiliation check after sign-up
//   - DepartmentService: user and administrator department selection
//   - ContentService: notice, event and benefit pages and the home page
//   - ManageService: administrator content management
//   - FeedbackService: feedback board and administrator replies
//   - UserService: administrator user list
package services
