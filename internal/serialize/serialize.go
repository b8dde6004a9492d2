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

// Package serialize converts api value types into the field maps that
// form XMS request payloads. All functions are pure and safe for
// concurrent use.
//
// Two rules apply uniformly. Creation fields are emitted only when
// non-default. Update fields follow three-state semantics: an unchanged
// field is omitted, a reset field is emitted as JSON null, and a set
// field is emitted with its value.
//
// Set-valued fields (recipients, tags, members) are sorted and
// de-duplicated before emission so that payloads are deterministic.
package serialize

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"github.com/clxcommunications/sdk-xms-go/xms/api"
)

// timeLayout renders timestamps with microsecond precision and an
// explicit numeric UTC offset, matching what XMS emits. UTC renders as
// "+00:00", never "Z".
const timeLayout = "2006-01-02T15:04:05.000000-07:00"

func writeTime(t time.Time) string {
	return t.Format(timeLayout)
}

func writeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func writeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// sortedSet returns a sorted copy of ss with duplicates collapsed.
func sortedSet(ss []string) []string {
	out := slices.Clone(ss)
	slices.Sort(out)
	return slices.Compact(out)
}

// update emits the three-state field u into fields under key, converting
// a set value with write.
func update[T any](fields map[string]any, key string, u api.Update[T], write func(T) any) {
	switch {
	case u.IsReset():
		fields[key] = nil
	case u.IsSet():
		fields[key] = write(u.Value())
	}
}

func batchCreateCommon(fields map[string]any, sender string, recipients, tags []string, report api.ReportType, sendAt, expireAt *time.Time, callbackURL string) {
	fields["from"] = sender
	fields["to"] = sortedSet(recipients)

	if report != "" {
		fields["delivery_report"] = string(report)
	}

	if sendAt != nil {
		fields["send_at"] = writeTime(*sendAt)
	}

	if expireAt != nil {
		fields["expire_at"] = writeTime(*expireAt)
	}

	if len(tags) > 0 {
		fields["tags"] = sortedSet(tags)
	}

	if callbackURL != "" {
		fields["callback_url"] = callbackURL
	}
}

// TextBatch serializes a text batch creation.
func TextBatch(batch *api.MtBatchTextSmsCreate) map[string]any {
	fields := map[string]any{
		"type": "mt_text",
		"body": batch.Body,
	}

	batchCreateCommon(fields, batch.Sender, batch.Recipients, batch.Tags,
		batch.DeliveryReport, batch.SendAt, batch.ExpireAt, batch.CallbackURL)

	if len(batch.Parameters) > 0 {
		fields["parameters"] = batch.Parameters
	}

	return fields
}

// BinaryBatch serializes a binary batch creation. The body is emitted as
// base64 text and the User Data Header as lowercase hex.
func BinaryBatch(batch *api.MtBatchBinarySmsCreate) map[string]any {
	fields := map[string]any{
		"type": "mt_binary",
		"body": writeBase64(batch.Body),
		"udh":  writeHex(batch.UDH),
	}

	batchCreateCommon(fields, batch.Sender, batch.Recipients, batch.Tags,
		batch.DeliveryReport, batch.SendAt, batch.ExpireAt, batch.CallbackURL)

	return fields
}

// BatchCreate serializes either batch creation variant.
func BatchCreate(batch api.MtBatchSmsCreate) map[string]any {
	switch batch := batch.(type) {
	case *api.MtBatchTextSmsCreate:
		return TextBatch(batch)
	case *api.MtBatchBinarySmsCreate:
		return BinaryBatch(batch)
	default:
		// The interface is closed; this is unreachable.
		panic(fmt.Sprintf("unknown batch create type %T", batch))
	}
}

func batchUpdateCommon(fields map[string]any, sender string, insertions, removals []string, report api.Update[api.ReportType], sendAt, expireAt api.Update[time.Time], callbackURL api.Update[string]) {
	if len(insertions) > 0 {
		fields["to_add"] = sortedSet(insertions)
	}

	if len(removals) > 0 {
		fields["to_remove"] = sortedSet(removals)
	}

	if sender != "" {
		fields["from"] = sender
	}

	update(fields, "delivery_report", report, func(r api.ReportType) any { return string(r) })
	update(fields, "send_at", sendAt, func(t time.Time) any { return writeTime(t) })
	update(fields, "expire_at", expireAt, func(t time.Time) any { return writeTime(t) })
	update(fields, "callback_url", callbackURL, func(u string) any { return u })
}

// TextBatchUpdate serializes a text batch update.
func TextBatchUpdate(batch *api.MtBatchTextSmsUpdate) map[string]any {
	fields := map[string]any{"type": "mt_text"}

	batchUpdateCommon(fields, batch.Sender, batch.RecipientInsertions, batch.RecipientRemovals,
		batch.DeliveryReport, batch.SendAt, batch.ExpireAt, batch.CallbackURL)

	if batch.Body != "" {
		fields["body"] = batch.Body
	}

	update(fields, "parameters", batch.Parameters, func(p map[string]map[string]string) any { return p })

	return fields
}

// BinaryBatchUpdate serializes a binary batch update.
func BinaryBatchUpdate(batch *api.MtBatchBinarySmsUpdate) map[string]any {
	fields := map[string]any{"type": "mt_binary"}

	batchUpdateCommon(fields, batch.Sender, batch.RecipientInsertions, batch.RecipientRemovals,
		batch.DeliveryReport, batch.SendAt, batch.ExpireAt, batch.CallbackURL)

	if len(batch.Body) > 0 {
		fields["body"] = writeBase64(batch.Body)
	}

	if len(batch.UDH) > 0 {
		fields["udh"] = writeHex(batch.UDH)
	}

	return fields
}

// BatchUpdate serializes either batch update variant.
func BatchUpdate(batch api.MtBatchSmsUpdate) map[string]any {
	switch batch := batch.(type) {
	case *api.MtBatchTextSmsUpdate:
		return TextBatchUpdate(batch)
	case *api.MtBatchBinarySmsUpdate:
		return BinaryBatchUpdate(batch)
	default:
		// The interface is closed; this is unreachable.
		panic(fmt.Sprintf("unknown batch update type %T", batch))
	}
}

// groupAutoUpdate serializes an auto-update rule. The add and remove
// sub-objects are included only when at least one keyword position is
// populated; a rule with no keywords serializes to just its trigger
// recipient.
func groupAutoUpdate(au *api.GroupAutoUpdate) map[string]any {
	fields := map[string]any{"to": au.Recipient}

	add := map[string]any{}
	if au.Add.FirstWord != "" {
		add["first_word"] = au.Add.FirstWord
	}
	if au.Add.SecondWord != "" {
		add["second_word"] = au.Add.SecondWord
	}
	if len(add) > 0 {
		fields["add"] = add
	}

	remove := map[string]any{}
	if au.Remove.FirstWord != "" {
		remove["first_word"] = au.Remove.FirstWord
	}
	if au.Remove.SecondWord != "" {
		remove["second_word"] = au.Remove.SecondWord
	}
	if len(remove) > 0 {
		fields["remove"] = remove
	}

	return fields
}

// GroupCreate serializes a group creation.
func GroupCreate(group *api.GroupCreate) map[string]any {
	fields := map[string]any{}

	if group.Name != "" {
		fields["name"] = group.Name
	}

	if len(group.Members) > 0 {
		fields["members"] = sortedSet(group.Members)
	}

	if len(group.ChildGroups) > 0 {
		fields["child_groups"] = sortedSet(group.ChildGroups)
	}

	if group.AutoUpdate != nil {
		fields["auto_update"] = groupAutoUpdate(group.AutoUpdate)
	}

	if len(group.Tags) > 0 {
		fields["tags"] = sortedSet(group.Tags)
	}

	return fields
}

// GroupUpdate serializes a group update.
func GroupUpdate(group *api.GroupUpdate) map[string]any {
	fields := map[string]any{}

	update(fields, "name", group.Name, func(n string) any { return n })

	if len(group.MemberInsertions) > 0 {
		fields["add"] = sortedSet(group.MemberInsertions)
	}

	if len(group.MemberRemovals) > 0 {
		fields["remove"] = sortedSet(group.MemberRemovals)
	}

	if len(group.ChildGroupInsertions) > 0 {
		fields["child_groups_add"] = sortedSet(group.ChildGroupInsertions)
	}

	if len(group.ChildGroupRemovals) > 0 {
		fields["child_groups_remove"] = sortedSet(group.ChildGroupRemovals)
	}

	if group.AddFromGroup != "" {
		fields["add_from_group"] = group.AddFromGroup
	}

	if group.RemoveFromGroup != "" {
		fields["remove_from_group"] = group.RemoveFromGroup
	}

	update(fields, "auto_update", group.AutoUpdate, func(au *api.GroupAutoUpdate) any { return groupAutoUpdate(au) })

	return fields
}

// Tags serializes a tag replacement payload.
func Tags(tags []string) map[string]any {
	return map[string]any{"tags": sortedSet(tags)}
}

// TagsUpdate serializes a tag update payload.
func TagsUpdate(tagsToAdd, tagsToRemove []string) map[string]any {
	return map[string]any{
		"add":    sortedSet(tagsToAdd),
		"remove": sortedSet(tagsToRemove),
	}
}
