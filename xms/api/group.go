// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import "time"

// KeywordPair is a two-keyword match rule used in group auto-updates. An
// empty word means no match is required at that position.
type KeywordPair struct {
	FirstWord  string `json:"first_word,omitempty"`
	SecondWord string `json:"second_word,omitempty"`
}

// IsZero reports whether neither keyword position is populated.
func (p KeywordPair) IsZero() bool {
	return p.FirstWord == "" && p.SecondWord == ""
}

// GroupAutoUpdate describes how a group is automatically updated from
// inbound traffic. When a message arrives at the Recipient address, the
// Add rule decides whether the message sender is added to the group and
// the Remove rule whether it is removed. A rule with no keywords at all
// disables that direction.
type GroupAutoUpdate struct {
	// Recipient is the address, typically a short code or long number,
	// that triggers the auto-update when messaged.
	Recipient string `json:"to"`

	Add    KeywordPair `json:"add,omitzero"`
	Remove KeywordPair `json:"remove,omitzero"`
}

// GroupCreate describes a recipient group to be created. All fields are
// optional; Members, ChildGroups, and Tags have set semantics.
type GroupCreate struct {
	Name        string
	Members     []string
	ChildGroups []string
	AutoUpdate  *GroupAutoUpdate
	Tags        []string
}

// GroupUpdate describes updates to an existing group. Name and AutoUpdate
// carry three-state semantics; membership and child-group changes are
// expressed as insertion and removal sets. AddFromGroup and
// RemoveFromGroup name other groups whose entire memberships are absorbed
// into or removed from this group.
type GroupUpdate struct {
	Name Update[string]

	MemberInsertions []string
	MemberRemovals   []string

	ChildGroupInsertions []string
	ChildGroupRemovals   []string

	AddFromGroup    string
	RemoveFromGroup string

	AutoUpdate Update[*GroupAutoUpdate]
}

// GroupResult is a recipient group as returned by XMS.
type GroupResult struct {
	GroupID     string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Size        int              `json:"size"`
	ChildGroups []string         `json:"child_groups"`
	AutoUpdate  *GroupAutoUpdate `json:"auto_update,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	ModifiedAt  time.Time        `json:"modified_at"`
}
