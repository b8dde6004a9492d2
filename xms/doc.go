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

// Package xms provides a client for the CLX Communications XMS API, the
// HTTP REST interface for SMS batch messaging.
//
// A client is tied to one service plan and authenticates with an API
// token:
//
//	client := xms.NewClient("myplan", "mytoken")
//
//	batch, err := client.CreateTextMessage(ctx, "12345", "987654321", "Hello!")
//
// Listing operations return a Pages value whose pages are fetched
// lazily:
//
//	for batch, err := range client.FetchBatches(xms.BatchParams{}).Elements(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(batch.ID())
//	}
//
// Failed operations return typed errors from the xmserror package, which
// callers can inspect with errors.As and errors.Is.
package xms
