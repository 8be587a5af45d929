package models

// StudyRole is the position a member holds inside a study.
type StudyRole string

const (
	StudyRoleLeader StudyRole = "LEADER"
	StudyRoleMember StudyRole = "MEMBER"
)

// StudyMemberStatus only ever moves away from JOINED.
type StudyMemberStatus string

const (
	StudyMemberJoined StudyMemberStatus = "JOINED"
	StudyMemberLeft   StudyMemberStatus = "LEFT"
	StudyMemberBanned StudyMemberStatus = "BANNED"
)

// ApplicationStatus tracks a request to join a study.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
)
