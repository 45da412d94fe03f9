package api

import (
	"context"
	"encoding/json"
)

// CommunityService covers posts, comments, likes, collections, follows and messages.
type CommunityService struct{ r Requester }

// Posts

func (s *CommunityService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/miniprogram", params)
}

func (s *CommunityService) ByCreateTime(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/byCreateTime", params)
}

func (s *CommunityService) ByFollowing(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/byFollowing", params)
}

func (s *CommunityService) ByViewCount(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/byViewCount", params)
}

func (s *CommunityService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/detail/"+seg(id), nil)
}

func (s *CommunityService) Submit(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityPost/submit", body)
}

func (s *CommunityService) EditOwn(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/edu/communityPost/editOwn", body)
}

func (s *CommunityService) DeleteOwn(ctx context.Context, postID string) (json.RawMessage, error) {
	return s.r.Delete(ctx, withQuery("/edu/communityPost/deleteOwn", "postId", postID), nil)
}

func (s *CommunityService) MyPosts(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/myPosts", params)
}

func (s *CommunityService) TypesMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityPost/types/map", nil)
}

// Comments

func (s *CommunityService) Comment(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityComment/commentPost", body)
}

func (s *CommunityService) Reply(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityComment/replyComment", body)
}

func (s *CommunityService) DeleteOwnComment(ctx context.Context, commentID string) (json.RawMessage, error) {
	return s.r.Delete(ctx, withQuery("/edu/communityComment/deleteOwn", "commentId", commentID), nil)
}

func (s *CommunityService) Comments(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityComment/list", params)
}

// Likes and collections

func (s *CommunityService) Like(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityLike/likePost", body)
}

func (s *CommunityService) Unlike(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityLike/unlikePost", body)
}

func (s *CommunityService) Likes(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityLike/list", params)
}

func (s *CommunityService) Collect(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityCollect/collectPost", body)
}

func (s *CommunityService) Uncollect(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityCollect/uncollectPost", body)
}

func (s *CommunityService) MyCollections(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityCollect/myCollections", params)
}

// Follows

func (s *CommunityService) Follow(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityFollow/follow", body)
}

func (s *CommunityService) Unfollow(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityFollow/unfollow", body)
}

func (s *CommunityService) MyFollowers(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityFollow/myFollowers", params)
}

func (s *CommunityService) MyFollowing(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityFollow/myFollowing", params)
}

// Messages

func (s *CommunityService) UnreadCount(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityMessage/unreadCount", nil)
}

func (s *CommunityService) LikeMessages(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityMessage/likes", params)
}

func (s *CommunityService) ReplyMessages(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityMessage/replies", params)
}

func (s *CommunityService) FollowMessages(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityMessage/follows", params)
}

func (s *CommunityService) SystemMessages(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/communityMessage/system", params)
}

func (s *CommunityService) MarkRead(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/communityMessage/markRead", body)
}

func (s *CommunityService) DeleteMessage(ctx context.Context, messageID string) (json.RawMessage, error) {
	return s.r.Delete(ctx, withQuery("/edu/communityMessage/delete", "messageId", messageID), nil)
}
