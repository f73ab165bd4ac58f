// Package messages defines the role-tagged messages that make up a conversation
// between the harness and a chat model.
//
// A conversation is an ordered, append-only sequence of messages. Each message
// carries a role (system, user or assistant), its text content and the time it
// was created:
//
//	msg := messages.User("Question:\nWhich drug ...")
//	reply := messages.Assistant("CALL FDA_get_risk_info_by_drug_name {\"drug_name\":\"warfarin\"}")
//
// Messages are values; once appended to a conversation they are never mutated.
package messages
