// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package route

// Well-known routes. Snowflake IDs are accepted as uint64.

// Gateway returns the route fetching the gateway URL.
func Gateway() Route {
	return MustNew(GET, "/gateway")
}

// CurrentUser returns the route fetching the authenticated user.
func CurrentUser() Route {
	return MustNew(GET, "/users/@me")
}

// User returns the route fetching a user by ID.
func User(userID uint64) Route {
	return MustNew(GET, "/users/{user.id}", userID)
}

// UserSettings returns the route updating the authenticated user's
// settings.
func UserSettings() Route {
	return MustNew(PATCH, "/users/@me/settings")
}

// UserGuildSettings returns the route updating the authenticated
// user's notification settings for a guild.
func UserGuildSettings(guildID uint64) Route {
	return MustNew(PATCH, "/users/@me/guilds/{guild.id}/settings", guildID)
}

// ChannelMessages returns the route listing messages in a channel.
func ChannelMessages(channelID uint64) Route {
	return MustNew(GET, "/channels/{channel.id}/messages", channelID)
}

// CreateMessage returns the route posting a message to a channel.
func CreateMessage(channelID uint64) Route {
	return MustNew(POST, "/channels/{channel.id}/messages", channelID)
}

// DeleteMessage returns the route deleting a message.
func DeleteMessage(channelID, messageID uint64) Route {
	return MustNew(DELETE, "/channels/{channel.id}/messages/{message.id}", channelID, messageID)
}

// Relationships returns the route listing the authenticated user's
// relationships.
func Relationships() Route {
	return MustNew(GET, "/users/@me/relationships")
}

// Relationship returns the route creating or updating a relationship
// with another user.
func Relationship(userID uint64) Route {
	return MustNew(PUT, "/users/@me/relationships/{user.id}", userID)
}

// DeleteRelationship returns the route removing a relationship.
func DeleteRelationship(userID uint64) Route {
	return MustNew(DELETE, "/users/@me/relationships/{user.id}", userID)
}

// Interactions returns the route creating an interaction, such as
// invoking an application command.
func Interactions() Route {
	return MustNew(POST, "/interactions")
}

// ApplicationCommandSearch returns the route searching the application
// commands available in a channel.
func ApplicationCommandSearch(channelID uint64) Route {
	return MustNew(GET, "/channels/{channel.id}/application-commands/search", channelID)
}
